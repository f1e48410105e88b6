package entities

import (
	crand "crypto/rand"
	"fmt"
)

// EntropySource supplies fresh seed bytes. It is only consulted when a
// lottery is constructed.
type EntropySource interface {
	Seed() ([SeedSize]byte, error)
}

// CryptoEntropy reads seeds from crypto/rand
type CryptoEntropy struct{}

// Seed returns SeedSize random bytes
func (CryptoEntropy) Seed() ([SeedSize]byte, error) {
	var seed [SeedSize]byte
	if _, err := crand.Read(seed[:]); err != nil {
		return seed, fmt.Errorf("read random seed: %w", err)
	}
	return seed, nil
}

// FixedEntropy always returns the same seed. Useful for replaying a draw.
type FixedEntropy [SeedSize]byte

// Seed returns the fixed seed
func (f FixedEntropy) Seed() ([SeedSize]byte, error) {
	return [SeedSize]byte(f), nil
}
