// Package queue implements the task runtime described by spec.md §4.7: a
// named-task queue with at-least-once delivery, a distinct result store,
// and immutable chains, built directly on Redis the way the teacher's own
// redis.Client is the one shared infrastructure client. It deliberately
// mirrors Celery's AsyncResult/chain vocabulary since that is the contract
// §4.7 specifies, without pulling in a third-party Go task-queue library —
// none appears anywhere in the retrieved example pack (see DESIGN.md).
package queue

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/andreypavlenko/jobmatch/internal/platform/redis"
	"github.com/google/uuid"
)

// State is the lifecycle state of a task, named after Celery's AsyncResult
// states since that is the vocabulary spec.md §4.7/§7 uses directly
// ("state = FAILURE").
type State string

const (
	StatePending State = "PENDING"
	StateStarted State = "STARTED"
	StateSuccess State = "SUCCESS"
	StateFailure State = "FAILURE"
)

const (
	defaultQueueKey    = "taskq:queue"
	processingQueueKey = "taskq:processing"
	taskKeyPrefix      = "taskq:task:"
	resultTTL          = 7 * 24 * time.Hour
)

func taskKey(id string) string {
	return taskKeyPrefix + id
}

// Envelope is the wire format pushed onto the Redis list.
type Envelope struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Args      json.RawMessage `json:"args"`
	ParentID  string          `json:"parent_id,omitempty"`
	ChainNext []ChainLink     `json:"chain_next,omitempty"`
	EnqueuedAt time.Time      `json:"enqueued_at"`
}

// Result is the read model returned by AsyncResult.
type Result struct {
	TaskID    string          `json:"task_id"`
	Name      string          `json:"name"`
	State     State           `json:"state"`
	Result    json.RawMessage `json:"result,omitempty"`
	Error     string          `json:"error,omitempty"`
	ParentID  string          `json:"parent_id,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Client enqueues tasks and reads results. It holds no per-task state;
// every enqueue/read is a handful of Redis round-trips.
type Client struct {
	redis *redis.Client
	queue string
}

// NewClient creates a task-runtime client over the given queue name.
// An empty name selects the default queue.
func NewClient(rdb *redis.Client, queueName string) *Client {
	if queueName == "" {
		queueName = defaultQueueKey
	}
	return &Client{redis: rdb, queue: queueName}
}

// Enqueue schedules name(args) and returns its task id immediately.
func (c *Client) Enqueue(ctx context.Context, name string, args any) (string, error) {
	return c.enqueueEnvelope(ctx, name, args, "", nil)
}

func (c *Client) enqueueEnvelope(ctx context.Context, name string, args any, parentID string, chainNext []ChainLink) (string, error) {
	payload, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("marshal task args: %w", err)
	}

	id := uuid.New().String()
	env := Envelope{
		ID:         id,
		Name:       name,
		Args:       payload,
		ParentID:   parentID,
		ChainNext:  chainNext,
		EnqueuedAt: time.Now().UTC(),
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return "", fmt.Errorf("marshal task envelope: %w", err)
	}

	if err := c.writeResult(ctx, Result{
		TaskID:    id,
		Name:      name,
		State:     StatePending,
		ParentID:  parentID,
		CreatedAt: env.EnqueuedAt,
		UpdatedAt: env.EnqueuedAt,
	}); err != nil {
		return "", err
	}

	if err := c.redis.LPush(ctx, c.queue, raw).Err(); err != nil {
		return "", fmt.Errorf("enqueue task: %w", err)
	}

	return id, nil
}

// AsyncResult retrieves the current state of a previously enqueued task.
func (c *Client) AsyncResult(ctx context.Context, taskID string) (*Result, error) {
	vals, err := c.redis.HGetAll(ctx, taskKey(taskID)).Result()
	if err != nil {
		return nil, fmt.Errorf("read task result: %w", err)
	}
	if len(vals) == 0 {
		return nil, ErrTaskNotFound
	}

	res := &Result{TaskID: taskID}
	res.Name = vals["name"]
	res.State = State(vals["state"])
	res.Error = vals["error"]
	res.ParentID = vals["parent_id"]
	if raw, ok := vals["result"]; ok && raw != "" {
		res.Result = json.RawMessage(raw)
	}
	if createdAt, ok := vals["created_at"]; ok {
		res.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdAt)
	}
	if updatedAt, ok := vals["updated_at"]; ok {
		res.UpdatedAt, _ = time.Parse(time.RFC3339Nano, updatedAt)
	}

	return res, nil
}

func (c *Client) writeResult(ctx context.Context, r Result) error {
	fields := map[string]any{
		"name":       r.Name,
		"state":      string(r.State),
		"parent_id":  r.ParentID,
		"error":      r.Error,
		"created_at": r.CreatedAt.Format(time.RFC3339Nano),
		"updated_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if len(r.Result) > 0 {
		fields["result"] = string(r.Result)
	}

	key := taskKey(r.TaskID)
	if err := c.redis.HSet(ctx, key, fields).Err(); err != nil {
		return fmt.Errorf("write task result: %w", err)
	}
	return c.redis.Expire(ctx, key, resultTTL).Err()
}

// ErrTaskNotFound is returned by AsyncResult for an unknown or expired id.
var ErrTaskNotFound = fmt.Errorf("task not found")
