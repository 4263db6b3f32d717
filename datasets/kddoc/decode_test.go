package kddoc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeFloats(t *testing.T) {
	v, err := DecodeFloats("[-0.005602254066616297, -5.430975914001465]")
	require.NoError(t, err)
	assert.Equal(t, []float64{-0.005602254066616297, -5.430975914001465}, v)

	v, err = DecodeFloats("[]")
	require.NoError(t, err)
	assert.Empty(t, v)

	_, err = DecodeFloats("[null, -5.43]")
	assert.ErrorContains(t, err, "element 0 is null")

	for _, bad := range []string{"", "null", "{}", `["a"]`, "[1,", "[null, -1]", "[-1, null]"} {
		_, err := DecodeFloats(bad)
		assert.ErrorIs(t, err, ErrMalformedColumn, bad)
	}
}

func TestDecodeLabels(t *testing.T) {
	v, err := DecodeLabels(`["cu:other", "cu:ask_Location"]`)
	require.NoError(t, err)
	assert.Equal(t, []string{"cu:other", "cu:ask_Location"}, v)

	for _, bad := range []string{"", "null", `"cu:other"`, "[1]", `["a", null]`, `["a", ""]`} {
		_, err := DecodeLabels(bad)
		assert.ErrorIs(t, err, ErrMalformedColumn, bad)
	}

	_, err = DecodeLabels(`["cu:other", null]`)
	assert.ErrorContains(t, err, "element 1 is null")
}
