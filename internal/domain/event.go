package domain

// Unknown is stored in place of any field the webhook payload did not carry.
const Unknown = "unknown"

// Action is the normalized kind of repository activity.
type Action string

const (
	ActionPush        Action = "PUSH"
	ActionPullRequest Action = "PULL_REQUEST"
	ActionMerge       Action = "MERGE"
)

// Valid reports whether a is one of the actions that may be persisted.
func (a Action) Valid() bool {
	switch a {
	case ActionPush, ActionPullRequest, ActionMerge:
		return true
	}
	return false
}

// CanonicalEvent is the single shape every accepted webhook is reduced to.
// FromBranch is nil for pushes and set for pull requests and merges.
type CanonicalEvent struct {
	RequestID  string  `json:"request_id"`
	Author     string  `json:"author"`
	Action     Action  `json:"action"`
	FromBranch *string `json:"from_branch"`
	ToBranch   string  `json:"to_branch"`
	Timestamp  string  `json:"timestamp"`
}

// StoredEvent is a CanonicalEvent together with the id the store assigned to it.
type StoredEvent struct {
	ID string `json:"id"`
	CanonicalEvent
}
