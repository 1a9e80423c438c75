package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/himynameismarvin/budget-bop/internal/mapper"
)

func TestParseMappingFlags(t *testing.T) {
	mapping, err := parseMappingFlags([]string{"date=Posted", "amount=Debit Amount"})
	require.NoError(t, err)

	assert.Equal(t, mapper.Mapping{
		mapper.FieldDate:   "Posted",
		mapper.FieldAmount: "Debit Amount",
	}, mapping)
}

func TestParseMappingFlags_Empty(t *testing.T) {
	mapping, err := parseMappingFlags(nil)
	require.NoError(t, err)
	assert.Nil(t, mapping)
}

func TestParseMappingFlags_Invalid(t *testing.T) {
	for _, bad := range []string{"date", "=Posted", "date="} {
		_, err := parseMappingFlags([]string{bad})
		assert.Error(t, err, "input %q", bad)
	}
}

func TestExpandArgs_KeepsStdinMarker(t *testing.T) {
	files := expandArgs([]string{"-"})
	assert.Equal(t, []string{"-"}, files)
}
