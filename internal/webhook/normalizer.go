package webhook

import (
	"fmt"
	"strings"
	"time"

	"github.com/spidyshivam/webhook-repo/internal/domain"
)

// EventHeader names the webhook event type.
const EventHeader = "X-GitHub-Event"

// Kind is the webhook event type taken from EventHeader.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPush
	KindPullRequest
	KindPing
)

// ParseKind maps an X-GitHub-Event value to a Kind. Unrecognized values
// are KindUnsupported.
func ParseKind(eventType string) Kind {
	switch eventType {
	case "push":
		return KindPush
	case "pull_request":
		return KindPullRequest
	case "ping":
		return KindPing
	default:
		return KindUnsupported
	}
}

type prAction int

const (
	prOther prAction = iota
	prOpened
	prClosed
)

func parsePRAction(action string) prAction {
	switch action {
	case "opened":
		return prOpened
	case "closed":
		return prClosed
	default:
		return prOther
	}
}

// Outcome says what the receiver should do with a normalized webhook.
type Outcome int

const (
	// OutcomeRecord means Result.Event must be stored.
	OutcomeRecord Outcome = iota
	// OutcomeIgnored means the event is valid but not modeled.
	OutcomeIgnored
	// OutcomePing answers the host's connectivity check.
	OutcomePing
)

func (o Outcome) String() string {
	switch o {
	case OutcomeRecord:
		return "record"
	case OutcomeIgnored:
		return "ignored"
	case OutcomePing:
		return "ping"
	}
	return fmt.Sprintf("Outcome(%d)", int(o))
}

// Result is the output of Normalize. Event is set only for OutcomeRecord.
type Result struct {
	Outcome Outcome
	Event   *domain.CanonicalEvent
	Message string
}

// Normalizer reduces webhook payloads to domain.CanonicalEvent.
type Normalizer struct {
	now func() time.Time
}

// NewNormalizer returns a Normalizer that stamps events with the wall clock.
func NewNormalizer() *Normalizer {
	return &Normalizer{now: time.Now}
}

// NewNormalizerWithClock is NewNormalizer with a fixed source of ingestion time.
func NewNormalizerWithClock(now func() time.Time) *Normalizer {
	return &Normalizer{now: now}
}

// Normalize turns one webhook delivery into a Result. It fails only with
// ErrMalformedPayload; unmodeled events come back as OutcomeIgnored.
func (n *Normalizer) Normalize(eventType string, body []byte) (Result, error) {
	receivedAt := n.now().UTC().Format(time.RFC3339)

	payload, err := decodeObject(body)
	if err != nil {
		return Result{}, err
	}

	switch ParseKind(eventType) {
	case KindPush:
		return record(normalizePush(payload, receivedAt)), nil
	case KindPullRequest:
		return normalizePullRequest(payload, receivedAt), nil
	case KindPing:
		return Result{Outcome: OutcomePing, Message: "Pong! Webhook is active."}, nil
	default:
		return ignored("Event type '%s' not handled", eventType), nil
	}
}

func normalizePush(p fields, receivedAt string) domain.CanonicalEvent {
	timestamp := receivedAt
	requestID := p.idOr("after", domain.Unknown)

	if p.has("head_commit") {
		head := p.object("head_commit")
		timestamp = head.timestampOr("timestamp", receivedAt)
		requestID = head.idOr("id", requestID)
	}

	return domain.CanonicalEvent{
		RequestID: requestID,
		Author:    p.object("pusher").stringOr("name", domain.Unknown),
		Action:    domain.ActionPush,
		ToBranch:  branchFromRef(p.stringOr("ref", "")),
		Timestamp: timestamp,
	}
}

func normalizePullRequest(p fields, receivedAt string) Result {
	action := p.stringOr("action", domain.Unknown)
	pr := p.object("pull_request")

	switch parsePRAction(action) {
	case prOpened:
		return record(domain.CanonicalEvent{
			RequestID:  pr.idOr("id", domain.Unknown),
			Author:     pr.object("user").stringOr("login", domain.Unknown),
			Action:     domain.ActionPullRequest,
			FromBranch: ptr(pr.object("head").stringOr("ref", domain.Unknown)),
			ToBranch:   pr.object("base").stringOr("ref", domain.Unknown),
			Timestamp:  pr.timestampOr("created_at", receivedAt),
		})
	case prClosed:
		if !pr.boolean("merged") {
			break
		}
		author, ok := pr.object("merged_by").str("login")
		if !ok {
			author = pr.object("user").stringOr("login", domain.Unknown)
		}
		return record(domain.CanonicalEvent{
			RequestID:  pr.idOr("merge_commit_sha", domain.Unknown),
			Author:     author,
			Action:     domain.ActionMerge,
			FromBranch: ptr(pr.object("head").stringOr("ref", domain.Unknown)),
			ToBranch:   pr.object("base").stringOr("ref", domain.Unknown),
			Timestamp:  pr.timestampOr("merged_at", receivedAt),
		})
	}

	return ignored("Pull request action %s not handled", action)
}

// branchFromRef returns the last segment of a git ref (refs/heads/main -> main).
func branchFromRef(ref string) string {
	branch := ref[strings.LastIndex(ref, "/")+1:]
	if branch == "" {
		return domain.Unknown
	}
	return branch
}

func record(ev domain.CanonicalEvent) Result {
	return Result{Outcome: OutcomeRecord, Event: &ev}
}

func ignored(format string, args ...any) Result {
	return Result{Outcome: OutcomeIgnored, Message: fmt.Sprintf(format, args...)}
}

func ptr(s string) *string {
	return &s
}
