package scene

import "github.com/google/uuid"

// NewID returns a unique entity id of the form "<prefix>-<uuid>".
func NewID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
