package tasks

import (
	"context"
	"fmt"

	"github.com/andreypavlenko/jobmatch/internal/platform/logger"
	"github.com/robfig/cron/v3"
)

// Beat drives the periodic side of component K: on each tick it enumerates
// active saved searches and enqueues one sync_saved_search task per search
// (§4.4 "A scheduled beat tick enumerates active saved searches and
// enqueues sync tasks"). Grounded on robfig/cron/v3, the same library two
// pack repos (rasfaxo-keerja-backend, ternarybob-quaero) use for exactly
// this purpose.
type Beat struct {
	cron          *cron.Cron
	savedSearches SavedSearchLister
	scheduler     TaskScheduler
	log           *logger.Logger
}

// NewBeat builds a Beat that ticks every intervalMinutes, running
// `*/N * * * *`.
func NewBeat(intervalMinutes int, savedSearches SavedSearchLister, scheduler TaskScheduler, log *logger.Logger) (*Beat, error) {
	if intervalMinutes < 1 {
		intervalMinutes = 1
	}
	b := &Beat{
		cron:          cron.New(),
		savedSearches: savedSearches,
		scheduler:     scheduler,
		log:           log,
	}
	spec := fmt.Sprintf("*/%d * * * *", intervalMinutes)
	if _, err := b.cron.AddFunc(spec, b.tick); err != nil {
		return nil, fmt.Errorf("schedule saved-search sync: %w", err)
	}
	return b, nil
}

// Start runs the scheduler in the background until Stop is called.
func (b *Beat) Start() {
	b.cron.Start()
}

// Stop waits for any in-flight tick to finish before returning (cooperative
// cancellation, §5 "Cancellation is cooperative; in-flight tasks finish").
func (b *Beat) Stop() {
	<-b.cron.Stop().Done()
}

func (b *Beat) tick() {
	ctx := context.Background()
	searches, err := b.savedSearches.ListActive(ctx)
	if err != nil {
		b.log.WithError("beat_list_active_failed").Error(fmt.Sprintf("list active saved searches: %v", err))
		return
	}

	for _, s := range searches {
		if _, err := b.scheduler.Enqueue(ctx, SyncSavedSearchTask, SyncSavedSearchArgs{SavedSearchID: s.ID}); err != nil {
			b.log.WithError("beat_enqueue_failed").Error(fmt.Sprintf("enqueue sync for saved search %s: %v", s.ID, err))
		}
	}
}
