package queue_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/andreypavlenko/jobmatch/internal/platform/logger"
	"github.com/andreypavlenko/jobmatch/internal/platform/queue"
	platformredis "github.com/andreypavlenko/jobmatch/internal/platform/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*queue.Client, *platformredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	return queue.NewClient(&platformredis.Client{Client: rdb}, ""), &platformredis.Client{Client: rdb}
}

func TestEnqueueAndAsyncResult(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	id, err := client.Enqueue(ctx, "embed_profile", map[string]string{"profile_id": "p-1"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	res, err := client.AsyncResult(ctx, id)
	require.NoError(t, err)
	require.Equal(t, queue.StatePending, res.State)
	require.Equal(t, "embed_profile", res.Name)
}

func TestAsyncResultUnknownTask(t *testing.T) {
	ctx := context.Background()
	client, _ := newTestClient(t)

	_, err := client.AsyncResult(ctx, "does-not-exist")
	require.ErrorIs(t, err, queue.ErrTaskNotFound)
}

func TestWorkerProcessesTaskToSuccess(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, _ := newTestClient(t)
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	registry := queue.Registry{
		"echo": func(_ context.Context, args json.RawMessage) (any, error) {
			var in map[string]string
			require.NoError(t, json.Unmarshal(args, &in))
			return map[string]string{"echoed": in["value"]}, nil
		},
	}
	worker := queue.NewWorker(client, registry, log)
	worker.PollTimeout = 200 * time.Millisecond

	id, err := client.Enqueue(ctx, "echo", map[string]string{"value": "hello"})
	require.NoError(t, err)

	go worker.Run(ctx)

	require.Eventually(t, func() bool {
		res, err := client.AsyncResult(ctx, id)
		return err == nil && res.State == queue.StateSuccess
	}, time.Second, 20*time.Millisecond)
}

func TestWorkerUnknownTaskFails(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, _ := newTestClient(t)
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	worker := queue.NewWorker(client, queue.Registry{}, log)
	worker.PollTimeout = 200 * time.Millisecond

	var failedName, failedID string
	worker.OnFailure = func(name, id string, _ error) {
		failedName, failedID = name, id
	}

	id, err := client.Enqueue(ctx, "unregistered", map[string]string{})
	require.NoError(t, err)

	go worker.Run(ctx)

	require.Eventually(t, func() bool {
		res, err := client.AsyncResult(ctx, id)
		return err == nil && res.State == queue.StateFailure
	}, time.Second, 20*time.Millisecond)

	require.Equal(t, "unregistered", failedName)
	require.Equal(t, id, failedID)
}

func TestChainStepSeesParentIDInContext(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, _ := newTestClient(t)
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	var firstID string
	var secondSawParentID string
	registry := queue.Registry{
		"first": func(_ context.Context, _ json.RawMessage) (any, error) { return "ok", nil },
		"second": func(ctx context.Context, _ json.RawMessage) (any, error) {
			secondSawParentID = queue.ParentIDFromContext(ctx)
			return "ok", nil
		},
	}
	worker := queue.NewWorker(client, registry, log)
	worker.PollTimeout = 200 * time.Millisecond

	chain := queue.NewChain("first", map[string]string{}).Then("second", map[string]string{})
	headID, err := client.EnqueueChain(ctx, chain)
	require.NoError(t, err)
	firstID = headID

	go worker.Run(ctx)

	require.Eventually(t, func() bool {
		return secondSawParentID != ""
	}, time.Second, 20*time.Millisecond)
	require.Equal(t, firstID, secondSawParentID)
}

func TestEnqueueChainAdvancesOnSuccess(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	client, _ := newTestClient(t)
	log, err := logger.New("error", "console")
	require.NoError(t, err)

	var secondRan bool
	registry := queue.Registry{
		"first":  func(_ context.Context, _ json.RawMessage) (any, error) { return "ok", nil },
		"second": func(_ context.Context, _ json.RawMessage) (any, error) { secondRan = true; return "ok", nil },
	}
	worker := queue.NewWorker(client, registry, log)
	worker.PollTimeout = 200 * time.Millisecond

	chain := queue.NewChain("first", map[string]string{}).Then("second", map[string]string{})
	headID, err := client.EnqueueChain(ctx, chain)
	require.NoError(t, err)
	require.NotEmpty(t, headID)

	go worker.Run(ctx)

	require.Eventually(t, func() bool {
		return secondRan
	}, time.Second, 20*time.Millisecond)
}
