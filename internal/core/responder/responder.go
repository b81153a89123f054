// Package responder is the local stand-in for a text-generation service: it
// matches keywords and answers with a suitable apology after a short pause.
package responder

import (
	"context"
	"strings"

	"sorrybot/internal/content"
	"sorrybot/internal/core/chance"
	"sorrybot/internal/core/model"
	"sorrybot/internal/core/schedule"
)

// DefaultLatency simulates the service thinking.
var DefaultLatency = model.Millis(600, 1600)

// Config contains runtime options for Responder.
type Config struct {
	Latency model.Range
}

// Responder generates replies from the content tables.
type Responder struct {
	pools     content.Pools
	scheduler schedule.Scheduler
	rng       chance.Source
	config    Config
	generic   []string
}

// New creates a Responder.
func New(pools content.Pools, scheduler schedule.Scheduler, rng chance.Source, config Config) *Responder {
	return &Responder{
		pools:     pools,
		scheduler: scheduler,
		rng:       rng,
		config:    config,
		generic:   pools.GenericFallback(),
	}
}

// Generate returns an apology for input. It fails only when ctx ends first.
func (responder *Responder) Generate(ctx context.Context, input string) (string, error) {
	delay := responder.config.Latency.Random(responder.rng)
	if !schedule.SleepContext(ctx, responder.scheduler, delay) {
		return "", ctx.Err()
	}
	return responder.Reply(input), nil
}

// Reply picks a reply without the simulated latency.
func (responder *Responder) Reply(input string) string {
	lowerInput := strings.ToLower(input)
	for _, entry := range responder.pools.Keywords {
		if strings.Contains(lowerInput, entry.Keyword) {
			return chance.Pick(responder.rng, entry.Responses)
		}
	}
	if strings.Contains(input, "?") && len(responder.pools.Questions) > 0 {
		return chance.Pick(responder.rng, responder.pools.Questions)
	}
	return chance.Pick(responder.rng, responder.generic)
}
