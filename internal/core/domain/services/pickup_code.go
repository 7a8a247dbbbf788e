package services

import (
	"fmt"
	"strconv"

	"restaurant/internal/core/domain/model/kernel"
)

// pickupCodeSuffixLen is how many trailing hex characters of the order id
// feed the code derivation.
const pickupCodeSuffixLen = 8

// pickupCodeSpace is the size of the code keyspace (6 decimal digits).
const pickupCodeSpace = 1_000_000

// PickupCodeGenerator derives the 6-digit pickup code from an order identifier.
//
// The derivation takes the last 8 hex characters of the UUID, interprets them
// as a base-16 integer, reduces modulo 1,000,000, and zero-pads to 6 digits.
// It is deterministic and idempotent: the same order id always yields the same
// code, so reads can recompute the code as a display-time fallback whenever the
// stored value is missing.
//
// Collisions across different orders are possible in principle (one in a
// million) and are an accepted risk: the code is a convenience lookup aid for
// counter handover, not a security credential.
type PickupCodeGenerator struct{}

// NewPickupCodeGenerator creates a new PickupCodeGenerator instance.
func NewPickupCodeGenerator() PickupCodeGenerator {
	return PickupCodeGenerator{}
}

// Generate returns the pickup code for the given order id.
// Fails only if the id was not properly constructed.
func (g PickupCodeGenerator) Generate(orderID kernel.UUID) (string, error) {
	if err := orderID.Validate(); err != nil {
		return "", err
	}

	s := orderID.String()
	suffix := s[len(s)-pickupCodeSuffixLen:]

	n, err := strconv.ParseUint(suffix, 16, 64)
	if err != nil {
		// Unreachable for a valid UUID: the last 8 characters are always hex.
		return "", err
	}

	return fmt.Sprintf("%06d", n%pickupCodeSpace), nil
}
