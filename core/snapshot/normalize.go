package snapshot

import (
	"fmt"
	"strconv"

	"trolley/core/utils"

	"github.com/goccy/go-json"
)

// Valuer is implemented by payload types that know their own snapshot form,
// typically nested structs that should appear as a nested Snapshot.
type Valuer interface {
	SnapshotValue() any
}

// Normalize converts v into one of the snapshot kinds.
// Unsupported values are coerced to their string form.
func Normalize(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case Snapshot:
		out := make(Snapshot, len(x))
		for k, val := range x {
			out[k] = Normalize(val)
		}
		return out
	case map[string]any:
		out := make(Snapshot, len(x))
		for k, val := range x {
			out[k] = Normalize(val)
		}
		return out
	case map[string]string:
		out := make(Snapshot, len(x))
		for k, val := range x {
			out[k] = val
		}
		return out
	case []any:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = Normalize(val)
		}
		return out
	case []string:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = val
		}
		return out
	case []float64:
		out := make([]any, len(x))
		for i, val := range x {
			out[i] = val
		}
		return out
	case bool, string, float64:
		return x
	case float32:
		return float64(x)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return utils.ToFloat(x)
	case json.Number:
		if f, err := strconv.ParseFloat(string(x), 64); err == nil {
			return f
		}
		return string(x)
	case Valuer:
		return Normalize(x.SnapshotValue())
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	default:
		return utils.ToString(x)
	}
}
