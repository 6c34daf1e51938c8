package coingecko

import (
	"bytes"
	"encoding/json"
	"fmt"
)

var nullLiteral = []byte("null")

// requireFields fails when data is not a JSON object or any of fields is absent or null.
func requireFields(data []byte, typ string, fields ...string) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%s: %w", typ, err)
	}
	if raw == nil {
		return fmt.Errorf("%s: expected object, got null", typ)
	}

	var missing []string
	for _, f := range fields {
		v, ok := raw[f]
		if !ok || bytes.Equal(bytes.TrimSpace(v), nullLiteral) {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Type: typ, Fields: missing}
	}
	return nil
}
