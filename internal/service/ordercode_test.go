package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neverExists(ctx context.Context, code string) (bool, error) {
	return false, nil
}

func TestGenerateCodeFormat(t *testing.T) {
	gen := NewSecretCodeGeneratorWithRand(rand.New(rand.NewPCG(1, 2)), neverExists)

	for i := 0; i < 10000; i++ {
		code, err := gen.Generate(context.Background())
		require.NoError(t, err)

		require.Len(t, code, 15)
		assert.GreaterOrEqual(t, code[0], byte('1'))
		assert.LessOrEqual(t, code[0], byte('9'))
		for _, ch := range code {
			assert.GreaterOrEqual(t, byte(ch), byte('0'))
			assert.LessOrEqual(t, byte(ch), byte('9'))
		}
	}
}

func TestGenerateIsSafeForConcurrentUse(t *testing.T) {
	// the production constructor backs the one generator shared by every
	// request, so concurrent calls must not trip the race detector
	gen := NewSecretCodeGenerator(neverExists)

	const goroutines = 8
	codes := make([]string, goroutines)
	errs := make([]error, goroutines)

	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				codes[i], errs[i] = gen.Generate(context.Background())
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < goroutines; i++ {
		require.NoError(t, errs[i])
		require.Len(t, codes[i], 15)
		assert.GreaterOrEqual(t, codes[i][0], byte('1'))
	}
}

func TestGenerateRetriesOnCollision(t *testing.T) {
	seen := make(map[string]bool)
	collisions := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		// pretend the first three candidates are already taken
		if collisions < 3 {
			collisions++
			seen[code] = true
			return true, nil
		}
		return false, nil
	}

	gen := NewSecretCodeGeneratorWithRand(rand.New(rand.NewPCG(7, 7)), exists)

	code, err := gen.Generate(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, collisions)
	assert.False(t, seen[code], "returned code must not be one the store already had")
}

func TestGenerateExhaustion(t *testing.T) {
	attempts := 0
	exists := func(ctx context.Context, code string) (bool, error) {
		attempts++
		return true, nil
	}

	gen := NewSecretCodeGeneratorWithRand(rand.New(rand.NewPCG(3, 4)), exists)

	_, err := gen.Generate(context.Background())
	require.ErrorIs(t, err, ErrCodeExhausted)
	assert.Equal(t, codeGenMaxAttempts, attempts)
}
