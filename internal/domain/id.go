package domain

import "fmt"

// ValidateID checks that id is a well-formed 24-hex-character store
// identifier. Malformed ids are rejected before any store round-trip.
func ValidateID(id string) error {
	if len(id) != 24 {
		return fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	for _, r := range id {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return fmt.Errorf("%w: %q", ErrInvalidID, id)
		}
	}
	return nil
}
