package cli

import (
	"fmt"

	"github.com/google/uuid"
)

// ParseID parses a positional id argument.
func ParseID(kind, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s id %q", kind, value)
	}
	return id, nil
}
