package utils

import "github.com/google/uuid"

// UUIDGenerator mints identifiers for new user and admin accounts.
// Version 7 UUIDs are time-ordered, which keeps primary-key indexes
// append-mostly; the random v4 fallback only matters if the system clock is
// unreadable.
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
