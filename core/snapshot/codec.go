package snapshot

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// Encode returns the canonical JSON form of s. Map keys are emitted sorted.
func Encode(s Snapshot) ([]byte, error) {
	if s == nil {
		s = Snapshot{}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode parses data produced by Encode. Empty input yields a nil snapshot.
func Decode(data []byte) (Snapshot, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return Normalize(raw).(Snapshot), nil
}

// String returns the canonical JSON form, or "{}" if encoding fails.
func (s Snapshot) String() string {
	data, err := Encode(s)
	if err != nil {
		return "{}"
	}
	return string(data)
}

// MarshalJSON implements json.Marshaler so snapshots embed as objects.
func (s Snapshot) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]any(s))
}

// UnmarshalJSON implements json.Unmarshaler and normalizes nested values.
func (s *Snapshot) UnmarshalJSON(data []byte) error {
	decoded, err := Decode(data)
	if err != nil {
		return err
	}
	*s = decoded
	return nil
}
