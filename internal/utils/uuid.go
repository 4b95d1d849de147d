package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered unique identifiers for expenses, phases,
// subtasks, images, and other embedded entities that clients may submit
// without an id.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

// Generate returns a UUIDv7 string, falling back to a random UUIDv4 if the
// system clock source fails.
func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
