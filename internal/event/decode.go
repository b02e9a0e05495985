package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload converts an event payload into T.
// In-process events already carry T (or *T); payloads read back from the
// dead-letter file arrive as generic maps and go through a JSON round-trip.
func DecodePayload[T any](input interface{}) (T, error) {
	switch v := input.(type) {
	case T:
		return v, nil
	case *T:
		if v != nil {
			return *v, nil
		}
	}

	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, fmt.Errorf("failed to encode payload: %w", err)
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return result, fmt.Errorf("failed to decode payload: %w", err)
	}
	return result, nil
}
