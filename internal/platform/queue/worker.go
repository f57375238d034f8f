package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/andreypavlenko/jobmatch/internal/platform/logger"
)

// Handler executes a single named task and returns its JSON-serializable
// result.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

type ctxKey int

const parentIDKey ctxKey = iota

// ParentIDFromContext returns the id of the task that chained into the one
// currently executing, if any. A handler that needs its predecessor's
// result calls client.AsyncResult(ctx, ParentIDFromContext(ctx)) rather
// than having the step's result threaded through args, matching Chain's
// "steps read upstream data back via AsyncResult(ParentID)" contract.
func ParentIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(parentIDKey).(string)
	return id
}

// ContextWithParentID attaches a parent task id the way Worker.process does,
// for tests of handlers that read ParentIDFromContext without running a full
// Worker loop.
func ContextWithParentID(ctx context.Context, parentID string) context.Context {
	return context.WithValue(ctx, parentIDKey, parentID)
}

// Registry maps task names to handlers. Unknown task names reaching a
// worker are recorded as StateFailure rather than crashing the worker loop,
// since a deploy mismatch between api and worker binaries should degrade,
// not take the whole process down.
type Registry map[string]Handler

// Worker pulls envelopes off the queue and dispatches them to a Registry.
// It follows the go-redis "reliable queue" pattern: BLMove moves the
// envelope into a processing list atomically with the pop, so a worker that
// dies mid-task leaves the envelope recoverable instead of silently
// dropped; LRem only removes it once the handler has returned.
type Worker struct {
	client   *Client
	registry Registry
	log      *logger.Logger

	// OnFailure, if set, is invoked for every task that ends in
	// StateFailure, in addition to the failure being recorded in the
	// result store. Wired to sentry.CaptureTaskFailure by cmd/worker.
	OnFailure func(taskName, taskID string, err error)

	// PollTimeout bounds each BLMove call so the loop can observe
	// ctx.Done() between polls. Defaults to 5s.
	PollTimeout time.Duration
}

// NewWorker builds a Worker bound to client's queue, dispatching to the
// given handlers.
func NewWorker(client *Client, registry Registry, log *logger.Logger) *Worker {
	return &Worker{
		client:      client,
		registry:    registry,
		log:         log,
		PollTimeout: 5 * time.Second,
	}
}

// Run processes tasks until ctx is canceled. A task already claimed off the
// queue is allowed to finish before the loop observes cancellation.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		raw, err := w.client.redis.BLMove(ctx, w.client.queue, processingQueueKey, "right", "left", w.pollTimeout()).Result()
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return ctx.Err()
			}
			if isRedisNil(err) {
				continue
			}
			w.log.WithError("queue_poll_failed").Error(fmt.Sprintf("poll task queue: %v", err))
			continue
		}

		w.process(ctx, raw)
	}
}

func (w *Worker) pollTimeout() time.Duration {
	if w.PollTimeout <= 0 {
		return 5 * time.Second
	}
	return w.PollTimeout
}

func (w *Worker) process(ctx context.Context, raw string) {
	defer func() {
		w.client.redis.LRem(ctx, processingQueueKey, 1, raw)
	}()

	var env Envelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		w.log.WithError("envelope_decode_failed").Error(fmt.Sprintf("decode task envelope: %v", err))
		return
	}

	taskLog := w.log.WithTaskID(env.ID)

	handler, ok := w.registry[env.Name]
	if !ok {
		w.fail(ctx, env, fmt.Errorf("no handler registered for task %q", env.Name))
		return
	}

	if err := w.client.writeResult(ctx, Result{
		TaskID:    env.ID,
		Name:      env.Name,
		State:     StateStarted,
		ParentID:  env.ParentID,
		CreatedAt: env.EnqueuedAt,
	}); err != nil {
		taskLog.Error(fmt.Sprintf("mark task started: %v", err))
	}

	handlerCtx := ctx
	if env.ParentID != "" {
		handlerCtx = context.WithValue(ctx, parentIDKey, env.ParentID)
	}
	result, err := handler(handlerCtx, env.Args)
	if err != nil {
		w.fail(ctx, env, err)
		return
	}

	payload, err := json.Marshal(result)
	if err != nil {
		w.fail(ctx, env, fmt.Errorf("marshal task result: %w", err))
		return
	}

	if err := w.client.writeResult(ctx, Result{
		TaskID:    env.ID,
		Name:      env.Name,
		State:     StateSuccess,
		Result:    payload,
		ParentID:  env.ParentID,
		CreatedAt: env.EnqueuedAt,
	}); err != nil {
		taskLog.Error(fmt.Sprintf("mark task success: %v", err))
	}

	if len(env.ChainNext) > 0 {
		next := env.ChainNext[0]
		if _, err := w.client.enqueueEnvelope(ctx, next.Name, json.RawMessage(next.Args), env.ID, env.ChainNext[1:]); err != nil {
			taskLog.Error(fmt.Sprintf("enqueue next chain step %q: %v", next.Name, err))
		}
	}
}

func (w *Worker) fail(ctx context.Context, env Envelope, cause error) {
	if err := w.client.writeResult(ctx, Result{
		TaskID:    env.ID,
		Name:      env.Name,
		State:     StateFailure,
		Error:     cause.Error(),
		ParentID:  env.ParentID,
		CreatedAt: env.EnqueuedAt,
	}); err != nil {
		w.log.WithTaskID(env.ID).Error(fmt.Sprintf("mark task failure: %v", err))
	}
	if w.OnFailure != nil {
		w.OnFailure(env.Name, env.ID, cause)
	}
}

func isRedisNil(err error) bool {
	return err.Error() == "redis: nil"
}
