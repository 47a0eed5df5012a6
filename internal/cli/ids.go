package cli

import "github.com/google/uuid"

// RunIDGenerator produces IDs for recorded runs.
type RunIDGenerator interface {
	Generate() string
}

// UUIDv7Generator produces time-ordered UUIDv7 run IDs.
type UUIDv7Generator struct{}

// Generate returns a new UUIDv7 string.
func (UUIDv7Generator) Generate() string {
	return uuid.Must(uuid.NewV7()).String()
}
