package identifier

import (
	"context"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratorFormat(t *testing.T) {
	gen := NewGenerator(NewCounterSource(0))

	prefixes := []string{PrefixPatient, PrefixAdmission, PrefixOrder, PrefixMedication, PrefixNote}
	for _, prefix := range prefixes {
		code, err := gen.Next(context.Background(), prefix)
		require.NoError(t, err)

		pattern := regexp.MustCompile(`^` + prefix + `-\d{6,}$`)
		assert.Regexp(t, pattern, code)
	}
}

func TestGeneratorZeroPadding(t *testing.T) {
	gen := NewGenerator(NewCounterSource(41))

	code, err := gen.Next(context.Background(), PrefixOrder)
	require.NoError(t, err)
	assert.Equal(t, "ORD-000042", code)
}

func TestGeneratorGrowsPastSixDigits(t *testing.T) {
	gen := NewGenerator(NewCounterSource(999999))

	code, err := gen.Next(context.Background(), PrefixAdmission)
	require.NoError(t, err)
	assert.Equal(t, "AD-1000000", code)
	assert.Regexp(t, regexp.MustCompile(`^AD-\d{6,}$`), code)
}

func TestGeneratorSequentialCodesNeverCollide(t *testing.T) {
	gen := NewGenerator(NewCounterSource(0))

	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		code, err := gen.Next(context.Background(), PrefixNote)
		require.NoError(t, err)
		assert.False(t, seen[code], "duplicate code %s", code)
		seen[code] = true
	}
}

func TestGeneratorRequiresPrefix(t *testing.T) {
	gen := NewGenerator(NewCounterSource(0))

	_, err := gen.Next(context.Background(), "")
	assert.Error(t, err)
}
