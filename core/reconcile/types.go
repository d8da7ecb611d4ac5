package reconcile

import "fmt"

// RequestKind identifies the kind of change request.
type RequestKind string

const (
	// KindAddition creates a new record.
	KindAddition RequestKind = "addition"
	// KindEdit modifies an existing record.
	KindEdit RequestKind = "edit"
	// KindRemoval evicts an existing record.
	KindRemoval RequestKind = "removal"
)

// Identity addresses one record across request kinds within a batch.
type Identity struct {
	// Key is the stable identity key. An empty key never matches.
	Key string `json:"key" yaml:"key"`
}

// Addition requests a new record. Its ID seeds the new record's identity.
type Addition[V any] struct {
	// ID is the change request id; models use it as the identity seed.
	ID string `json:"id" yaml:"id"`

	// Value is the payload used to build the record.
	Value V `json:"value" yaml:"value"`
}

// Edit requests changes to the record matching Identity.
type Edit[V any] struct {
	// ID is the change request id.
	ID string `json:"id" yaml:"id"`

	// Identity selects the target record.
	Identity Identity `json:"identity" yaml:"identity"`

	// Value is the requested payload.
	Value V `json:"value" yaml:"value"`
}

// Removal requests eviction of the record matching Identity.
type Removal struct {
	// ID is the change request id.
	ID string `json:"id" yaml:"id"`

	// Identity selects the target record.
	Identity Identity `json:"identity" yaml:"identity"`
}

// Batch is one invocation's worth of change requests.
// It is consumed once by the engine and not retained.
type Batch[A, E any] struct {
	Removals  []Removal     `json:"removals" yaml:"removals"`
	Additions []Addition[A] `json:"additions" yaml:"additions"`
	Edits     []Edit[E]     `json:"edits" yaml:"edits"`
}

// IsEmpty reports whether the batch has no requests.
func (b Batch[A, E]) IsEmpty() bool {
	return len(b.Removals) == 0 && len(b.Additions) == 0 && len(b.Edits) == 0
}

// Provenance links a record to the change request that created or last touched it.
type Provenance struct {
	// Kind is the request kind.
	Kind RequestKind `json:"kind"`

	// RequestID is the change request id.
	RequestID string `json:"request_id"`
}

// String returns the provenance token, e.g. "edit:5f1c...".
func (p Provenance) String() string {
	if p.Kind == "" {
		return ""
	}
	return fmt.Sprintf("%s:%s", p.Kind, p.RequestID)
}

// ParseProvenance parses a token produced by Provenance.String.
func ParseProvenance(token string) Provenance {
	for i := 0; i < len(token); i++ {
		if token[i] == ':' {
			return Provenance{Kind: RequestKind(token[:i]), RequestID: token[i+1:]}
		}
	}
	return Provenance{}
}

// Summary provides aggregate counts for one reconcile pass.
type Summary struct {
	// Removed counts evicted records.
	Removed int `json:"removed"`

	// MissedRemovals counts removals whose identity matched nothing.
	MissedRemovals int `json:"missed_removals"`

	// Added counts appended records.
	Added int `json:"added"`

	// Edited counts edits applied to a matching record.
	Edited int `json:"edited"`

	// DroppedEdits counts edits whose identity matched nothing.
	DroppedEdits int `json:"dropped_edits"`

	// Effective counts applied edits that changed observable state.
	Effective int `json:"effective"`

	// NoOp counts applied edits that changed nothing.
	NoOp int `json:"noop"`
}

// Result is the outcome of a reconcile pass.
type Result[T any] struct {
	// Records is the reconciled collection in stable order.
	Records []T

	// Warnings holds the ordered diff and status log lines.
	Warnings []string

	// Summary provides aggregate counts.
	Summary Summary
}
