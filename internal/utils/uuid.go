package utils

import "github.com/google/uuid"

// UUIDGenerator issues time-ordered v7 identifiers for new entities.
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

// IsUUID reports whether s is a well-formed identifier. Path parameters are
// checked with it before they reach SQL, where a malformed uuid would be a
// syntax error instead of a miss.
func IsUUID(s string) bool {
	return uuid.Validate(s) == nil
}
