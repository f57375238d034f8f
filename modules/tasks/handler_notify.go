package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/andreypavlenko/jobmatch/internal/platform/queue"
	"github.com/andreypavlenko/jobmatch/modules/matching"
)

// handleNotify implements the supplemented notify task (SPEC_FULL §10): read
// the recompute_recommendations result this task was chained after, and, if
// it produced any strong verdicts and the profile has a contact
// email, send a summary via Resend. Additive and best-effort: a missing
// email, a missing Resend key, or an empty strong set all skip the send
// rather than failing the task.
func (d *Deps) handleNotify(ctx context.Context, raw json.RawMessage) (any, error) {
	var args NotifyArgs
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("decode %s args: %w", NotifyTask, err)
	}

	if d.Mailer == nil || d.FromEmail == "" {
		return notifyResult{Sent: false, SkippedReason: "resend not configured"}, nil
	}

	parentID := queue.ParentIDFromContext(ctx)
	if parentID == "" {
		return notifyResult{Sent: false, SkippedReason: "no recompute result in chain"}, nil
	}
	parent, err := d.TaskResults.AsyncResult(ctx, parentID)
	if err != nil {
		return nil, fmt.Errorf("load parent task %s: %w", parentID, err)
	}
	if parent.State != queue.StateSuccess || len(parent.Result) == 0 {
		return notifyResult{Sent: false, SkippedReason: "parent task did not succeed"}, nil
	}

	var recompute recomputeResult
	if err := json.Unmarshal(parent.Result, &recompute); err != nil {
		return nil, fmt.Errorf("decode recompute result: %w", err)
	}

	var strong []recomputeItem
	for _, it := range recompute.Items {
		if it.Verdict == string(matching.VerdictStrong) {
			strong = append(strong, it)
		}
	}
	if len(strong) == 0 {
		return notifyResult{Sent: false, SkippedReason: "no strong recommendations"}, nil
	}

	profile, err := d.Profiles.GetByID(ctx, args.ProfileID)
	if err != nil {
		return nil, fmt.Errorf("load profile %s: %w", args.ProfileID, err)
	}
	if profile.ContactEmail == nil || *profile.ContactEmail == "" {
		return notifyResult{Sent: false, SkippedReason: "no contact email", RecommendCount: len(strong)}, nil
	}

	if err := d.Mailer.Send(ctx, d.FromEmail, *profile.ContactEmail, notifySubject(len(strong)), notifyHTML(strong)); err != nil {
		return nil, fmt.Errorf("send notify email: %w", err)
	}

	return notifyResult{Sent: true, RecommendCount: len(strong)}, nil
}

func notifySubject(count int) string {
	return strconv.Itoa(count) + " new strong matches found"
}

func notifyHTML(items []recomputeItem) string {
	var b strings.Builder
	b.WriteString("<p>New strong-match vacancies for your profile:</p><ul>")
	for _, it := range items {
		b.WriteString(fmt.Sprintf("<li>vacancy %s — score %.2f</li>", it.VacancyID, it.FinalScore))
	}
	b.WriteString("</ul>")
	return b.String()
}
