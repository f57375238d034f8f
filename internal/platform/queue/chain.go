package queue

import (
	"context"
	"encoding/json"
	"fmt"
)

// Chain is an immutable, ordered sequence of tasks: each step is enqueued
// only once its predecessor reaches StateSuccess. A failure anywhere in the
// chain aborts the remaining steps instead of running them against a
// missing upstream result. Steps do not receive the previous step's result
// automatically — handlers that need upstream data read it back via
// AsyncResult(ParentID), the way modules/tasks wires the
// "profile backfill → embed → recommend" pipeline (spec.md §4.7).
type Chain struct {
	links []chainStep
}

type chainStep struct {
	name string
	args any
}

// NewChain starts a chain with its first step.
func NewChain(name string, args any) *Chain {
	return &Chain{links: []chainStep{{name: name, args: args}}}
}

// Then returns a new chain with the step appended; the receiver is left unchanged.
func (c *Chain) Then(name string, args any) *Chain {
	links := make([]chainStep, len(c.links), len(c.links)+1)
	copy(links, c.links)
	return &Chain{links: append(links, chainStep{name: name, args: args})}
}

// EnqueueChain enqueues the first step of the chain immediately; the
// remaining steps travel with its envelope as ChainNext and are enqueued by
// the worker one at a time as each predecessor succeeds. It returns the id
// of the first (head) task.
func (c *Client) EnqueueChain(ctx context.Context, chain *Chain) (string, error) {
	if len(chain.links) == 0 {
		return "", fmt.Errorf("empty chain")
	}

	rest := make([]ChainLink, 0, len(chain.links)-1)
	for _, step := range chain.links[1:] {
		payload, err := json.Marshal(step.args)
		if err != nil {
			return "", fmt.Errorf("marshal chain step %q args: %w", step.name, err)
		}
		rest = append(rest, ChainLink{Name: step.name, Args: payload})
	}

	head := chain.links[0]
	return c.enqueueEnvelope(ctx, head.name, head.args, "", rest)
}
