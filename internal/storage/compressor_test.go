package storage

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestZstdCompressor_RoundTrip(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	input := bytes.Repeat([]byte(`{"placeId":"p1","showCount":1}`), 200)
	compressed, err := c.Compress(input)
	require.NoError(t, err)
	assert.Less(t, len(compressed), len(input))

	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, input, out)
}

func TestZstdCompressor_DecompressGarbage(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	_, err = c.Decompress([]byte("definitely not zstd"))
	assert.Error(t, err)
}

func TestZstdCompressor_Empty(t *testing.T) {
	c, err := NewZstdCompressor()
	require.NoError(t, err)
	defer c.Close()

	compressed, err := c.Compress(nil)
	require.NoError(t, err)
	out, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Empty(t, out)
}
