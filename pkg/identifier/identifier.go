package identifier

import (
	"context"
	"fmt"
	"sync/atomic"
)

// Prefixes for record codes handed to staff and printed on charts.
const (
	PrefixPatient    = "PT"
	PrefixAdmission  = "AD"
	PrefixOrder      = "ORD"
	PrefixMedication = "MED"
	PrefixNote       = "NOTE"
)

// Source yields the next value of a monotonic sequence. The production
// implementation is backed by a database sequence so codes never collide
// across instances.
type Source interface {
	Next(ctx context.Context) (int64, error)
}

// Generator produces human-readable record codes of the form <PREFIX>-NNNNNN.
// The numeric suffix is zero-padded to six digits and grows past six digits
// once the sequence exceeds 999999.
type Generator struct {
	source Source
}

func NewGenerator(source Source) *Generator {
	return &Generator{source: source}
}

func (g *Generator) Next(ctx context.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", fmt.Errorf("prefix is required")
	}
	n, err := g.source.Next(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to advance sequence: %w", err)
	}
	return Format(prefix, n), nil
}

// Format renders a sequence value as a record code.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s-%06d", prefix, n)
}

// CounterSource is an in-memory Source for tests and single-node tools.
type CounterSource struct {
	n atomic.Int64
}

func NewCounterSource(start int64) *CounterSource {
	s := &CounterSource{}
	s.n.Store(start)
	return s
}

func (s *CounterSource) Next(_ context.Context) (int64, error) {
	return s.n.Add(1), nil
}
