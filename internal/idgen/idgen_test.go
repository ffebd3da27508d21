package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateWidths(t *testing.T) {
	tests := []struct {
		prefix string
		index  int
		want   string
	}{
		{"INST", 1, "INST_0001"},
		{"INST", 42, "INST_0042"},
		{"COMP", 1, "COMP_0001"},
		{"DOMA", 7, "DOMA_07"},
		{"MENT", 1, "MENT_000001"},
		{"PARC", 7, "PARC_0000007"},
		{"NIVE", 3, "NIVE_03"},
		{"SEME", 10, "SEME_10"},
		{"ANNE", 6, "ANNE_0006"},
		{"MODE", 2, "MODE_002"},
		{"TYPE", 1, "TYPE_01"},
	}

	for _, tt := range tests {
		got, err := Generate(tt.prefix, tt.index)
		require.NoError(t, err, tt.prefix)
		assert.Equal(t, tt.want, got)
	}
}

func TestGenerateSingleDigitWidth(t *testing.T) {
	// Width-1 prefixes render plain decimal digits, no padding.
	got, err := Generate("CYCL", 3)
	require.NoError(t, err)
	assert.Equal(t, "CYCL_3", got)

	got, err = Generate("SESS", 1)
	require.NoError(t, err)
	assert.Equal(t, "SESS_1", got)
}

func TestGenerateUnknownPrefix(t *testing.T) {
	_, err := Generate("BOGUS", 1)
	require.Error(t, err)

	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "BOGUS", cfgErr.Prefix)
}

func TestGenerateOverflow(t *testing.T) {
	// The 10000th institution still fits a 4-digit suffix; 10001 does not.
	got, err := Generate("INST", 9999)
	require.NoError(t, err)
	assert.Equal(t, "INST_9999", got)

	_, err = Generate("INST", 10000)
	var ovf *OverflowError
	require.ErrorAs(t, err, &ovf)
	assert.Equal(t, "INST", ovf.Prefix)
	assert.Equal(t, 10000, ovf.Index)
	assert.Equal(t, 4, ovf.Width)

	// Width 1 overflows at 10.
	_, err = Generate("CYCL", 10)
	require.ErrorAs(t, err, &ovf)
}

func TestCounterSequence(t *testing.T) {
	c := NewCounter("DOMA", 0)

	first, err := c.Next()
	require.NoError(t, err)
	second, err := c.Next()
	require.NoError(t, err)

	assert.Equal(t, "DOMA_01", first)
	assert.Equal(t, "DOMA_02", second)
	assert.Equal(t, 2, c.Allocated())
}

func TestCounterSeeded(t *testing.T) {
	// A counter seeded from existing rows continues after them.
	c := NewCounter("INST", 3)

	id, err := c.Next()
	require.NoError(t, err)
	assert.Equal(t, "INST_0004", id)
}

func TestCounterOverflowDoesNotAdvance(t *testing.T) {
	c := NewCounter("SESS", 9)

	_, err := c.Next()
	var ovf *OverflowError
	require.ErrorAs(t, err, &ovf)
	assert.Equal(t, 9, c.Allocated())
}
