package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("80x40")
	require.NoError(t, err)
	assert.Equal(t, 80, w)
	assert.Equal(t, 40, h)

	w, h, err = parseSize("3X2")
	require.NoError(t, err)
	assert.Equal(t, 3, w)
	assert.Equal(t, 2, h)

	for _, bad := range []string{"", "80", "ax2", "2xb", "0x5", "-1x4"} {
		_, _, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}
