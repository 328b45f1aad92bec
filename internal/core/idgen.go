package core

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
)

// RandomSource yields uniform integers in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type RandomSource interface {
	IntN(n int) int
}

// ExistsFunc reports whether a candidate identifier is already taken.
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// DefaultRandomSource returns the process-wide source, safe for concurrent use.
func DefaultRandomSource() RandomSource {
	return globalSource{}
}

// IDGenerator produces company IDs and invoice numbers, retrying until the supplied
// uniqueness check reports a free candidate. The check is not a reservation; callers
// must still rely on a storage uniqueness constraint.
type IDGenerator struct {
	rnd RandomSource
}

// NewIDGenerator constructs an IDGenerator. A nil source selects DefaultRandomSource.
func NewIDGenerator(rnd RandomSource) *IDGenerator {
	if rnd == nil {
		rnd = DefaultRandomSource()
	}
	return &IDGenerator{rnd: rnd}
}

// CompanyID returns a zero-padded 6-digit identifier not reported taken by exists.
func (g *IDGenerator) CompanyID(ctx context.Context, exists ExistsFunc) (string, error) {
	return g.generate(ctx, exists, func() string {
		return fmt.Sprintf("%06d", g.rnd.IntN(1000000))
	})
}

// InvoiceNumber returns 3 digits followed by 3 uppercase letters, e.g. "042ABX".
func (g *IDGenerator) InvoiceNumber(ctx context.Context, exists ExistsFunc) (string, error) {
	return g.generate(ctx, exists, func() string {
		var b strings.Builder
		fmt.Fprintf(&b, "%03d", g.rnd.IntN(1000))
		for i := 0; i < 3; i++ {
			b.WriteByte(byte('A' + g.rnd.IntN(26)))
		}
		return b.String()
	})
}

func (g *IDGenerator) generate(ctx context.Context, exists ExistsFunc, next func() string) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate := next()
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check identifier %s: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
	}
}
