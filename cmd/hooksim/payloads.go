package main

import (
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"time"
)

// sample is one webhook delivery the simulator can send.
type sample struct {
	Event string
	Body  []byte
}

type sampleParams struct {
	Author string
	From   string
	To     string
	Now    time.Time
}

func sha(r *rand.Rand) string {
	return fmt.Sprintf("%016x%016x%08x", r.Uint64(), r.Uint64(), r.Uint32())
}

// buildSample returns the payload for kind. Kinds mirror what the receiver
// distinguishes: push, opened, merged, closed and ping.
func buildSample(kind string, p sampleParams, r *rand.Rand) (sample, error) {
	ts := p.Now.UTC().Format(time.RFC3339)
	prID := r.Int64N(1_000_000_000)

	var (
		event   string
		payload any
	)

	switch kind {
	case "push":
		after := sha(r)
		event = "push"
		payload = map[string]any{
			"ref":    "refs/heads/" + p.To,
			"after":  after,
			"pusher": map[string]any{"name": p.Author},
			"head_commit": map[string]any{
				"id":        after,
				"timestamp": ts,
			},
		}
	case "opened", "merged", "closed":
		event = "pull_request"
		pr := map[string]any{
			"id":         prID,
			"user":       map[string]any{"login": p.Author},
			"head":       map[string]any{"ref": p.From},
			"base":       map[string]any{"ref": p.To},
			"created_at": ts,
			"merged":     kind == "merged",
		}
		action := kind
		if kind == "merged" {
			action = "closed"
			pr["merged_at"] = ts
			pr["merged_by"] = map[string]any{"login": p.Author}
			pr["merge_commit_sha"] = sha(r)
		}
		payload = map[string]any{"action": action, "number": prID % 1000, "pull_request": pr}
	case "ping":
		event = "ping"
		payload = map[string]any{"zen": "Anything added dilutes everything else."}
	default:
		return sample{}, fmt.Errorf("unknown sample kind %q", kind)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return sample{}, fmt.Errorf("encoding %s sample: %w", kind, err)
	}
	return sample{Event: event, Body: body}, nil
}
