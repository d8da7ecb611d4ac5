package reconcile

// Keyed is implemented by records addressable by an identity key.
type Keyed interface {
	// IdentityKey returns the record's identity key.
	IdentityKey() string
}

// Record is the constraint on reconciled records.
type Record interface {
	Keyed

	// SetProvenance stamps the change request that created or last touched the record.
	SetProvenance(Provenance)
}

// Classified is optionally implemented by records that know whether their
// latest edit changed observable state. The engine uses it for summary counts.
type Classified interface {
	Effective() bool
}

// Funcs holds the model-specific callbacks used by the engine.
// Callback errors are not recovered: they abort the current batch.
type Funcs[T Record, A, E any] struct {
	// Create builds a new record from an addition.
	Create func(Addition[A]) (T, error)

	// Modify applies an edit to a matched record and returns the updated record.
	// Diff and status lines for the edit are written to w.
	Modify func(T, Edit[E], *Warnings) (T, error)
}

// Matches reports whether rec is addressed by id. Matching is exact key
// equality and an empty key never matches.
func Matches(rec Keyed, id Identity) bool {
	if id.Key == "" {
		return false
	}
	return rec.IdentityKey() == id.Key
}
