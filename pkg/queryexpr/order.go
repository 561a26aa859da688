package queryexpr

import (
	"errors"
	"fmt"
	"strings"
)

// OrderSchema declares the accepted --order-by keys and where the
// parsed ordering lands. Keys maps the expression key onto the wire
// value the server expects.
type OrderSchema struct {
	Keys map[string]string
	Set  func(key string, desc bool)
}

func bindOrder(raw string, schema OrderSchema) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if schema.Set == nil {
		return errors.New("no order schema defined")
	}

	parts := strings.Fields(raw)
	if len(parts) == 0 || len(parts) > 2 {
		return fmt.Errorf("invalid order expression %q", raw)
	}

	key, ok := schema.Keys[parts[0]]
	if !ok {
		return fmt.Errorf("field %q cannot be used for ordering", parts[0])
	}

	desc := false
	if len(parts) == 2 {
		switch strings.ToLower(parts[1]) {
		case "asc":
		case "desc":
			desc = true
		default:
			return fmt.Errorf("invalid direction %q for field %q", parts[1], parts[0])
		}
	}

	schema.Set(key, desc)
	return nil
}
