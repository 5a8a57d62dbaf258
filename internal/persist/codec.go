package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/Makepad-fr/tada/internal/model"
)

// ErrMalformed wraps every Decode failure.
var ErrMalformed = errors.New("malformed task list")

// Encode serializes l as a JSON array in list order. An empty list encodes
// as [] so the slot is never "null".
func Encode(l model.List) ([]byte, error) {
	if l == nil {
		l = model.List{}
	}
	b, err := json.MarshalIndent(l, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("json marshal: %w", err)
	}
	return b, nil
}

// Decode parses and validates a stored task list: a JSON array of objects,
// each with an integer id, a non-blank string title and a boolean
// completed. Extra fields are ignored. Duplicate ids are rejected.
func Decode(b []byte) (model.List, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if raw == nil {
		// "null" unmarshals without error
		return nil, fmt.Errorf("%w: not an array", ErrMalformed)
	}

	out := make(model.List, 0, len(raw))
	seen := make(map[int64]struct{}, len(raw))
	for i, obj := range raw {
		if obj == nil {
			return nil, fmt.Errorf("%w: item %d: not an object", ErrMalformed, i)
		}
		var t model.Task
		if err := field(obj, "id", &t.ID); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformed, i, err)
		}
		if err := field(obj, "title", &t.Title); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformed, i, err)
		}
		if err := field(obj, "completed", &t.Completed); err != nil {
			return nil, fmt.Errorf("%w: item %d: %v", ErrMalformed, i, err)
		}
		if strings.TrimSpace(t.Title) == "" {
			return nil, fmt.Errorf("%w: item %d: blank title", ErrMalformed, i)
		}
		if _, dup := seen[t.ID]; dup {
			return nil, fmt.Errorf("%w: item %d: duplicate id %d", ErrMalformed, i, t.ID)
		}
		seen[t.ID] = struct{}{}
		out = append(out, t)
	}
	return out, nil
}

// field decodes obj[name] into dst, refusing missing keys and JSON null
// (which json.Unmarshal would otherwise accept as the zero value).
func field(obj map[string]json.RawMessage, name string, dst any) error {
	v, ok := obj[name]
	if !ok {
		return fmt.Errorf("missing %q", name)
	}
	if bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
		return fmt.Errorf("%q is null", name)
	}
	if err := json.Unmarshal(v, dst); err != nil {
		return fmt.Errorf("%q: %v", name, err)
	}
	return nil
}
