package service

import (
	"context"
	"math/rand/v2"
	"strings"
)

const (
	secretCodeLength   = 15
	codeGenMaxAttempts = 10
)

// CodeExistsFunc reports whether a candidate code is already taken as an
// order identifier.
type CodeExistsFunc func(ctx context.Context, code string) (bool, error)

// SecretCodeGenerator produces 15-digit order codes with a non-zero first
// digit. The existence pre-check is an optimization; the unique index on
// amazon_orders.order_id is what actually prevents duplicates under
// concurrent generators.
type SecretCodeGenerator struct {
	intN   func(n int) int
	exists CodeExistsFunc
}

// NewSecretCodeGenerator uses the top-level math/rand/v2 source, which is
// safe for concurrent use; one generator is shared by all requests.
func NewSecretCodeGenerator(exists CodeExistsFunc) *SecretCodeGenerator {
	return &SecretCodeGenerator{
		intN:   rand.IntN,
		exists: exists,
	}
}

// NewSecretCodeGeneratorWithRand lets tests supply a deterministic source.
// Callers own the *rand.Rand and must not share it across goroutines.
func NewSecretCodeGeneratorWithRand(rng *rand.Rand, exists CodeExistsFunc) *SecretCodeGenerator {
	return &SecretCodeGenerator{
		intN:   rng.IntN,
		exists: exists,
	}
}

func (g *SecretCodeGenerator) Generate(ctx context.Context) (string, error) {
	for attempt := 0; attempt < codeGenMaxAttempts; attempt++ {
		code := g.randomCode()

		taken, err := g.exists(ctx, code)
		if err != nil {
			return "", err
		}
		if !taken {
			return code, nil
		}
	}

	return "", ErrCodeExhausted
}

func (g *SecretCodeGenerator) randomCode() string {
	var b strings.Builder
	b.Grow(secretCodeLength)

	// first digit 1-9, the rest 0-9
	b.WriteByte(byte('1' + g.intN(9)))
	for i := 1; i < secretCodeLength; i++ {
		b.WriteByte(byte('0' + g.intN(10)))
	}

	return b.String()
}
