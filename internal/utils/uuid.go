package utils

import "github.com/google/uuid"

// UUIDGenerator produces client-side write identifiers. UUIDv7 is preferred
// because its time-ordered prefix keeps queue listings and DB indexes in
// enqueue order.
type UUIDGenerator struct {
}

func NewUUIDGenerator() *UUIDGenerator {
	return &UUIDGenerator{}
}

func (g *UUIDGenerator) Generate() string {
	v7, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return v7.String()
}
