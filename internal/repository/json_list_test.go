package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeList(t *testing.T) {
	b, err := encodeList([]string{"a", "b"})
	require.NoError(t, err)
	assert.JSONEq(t, `["a","b"]`, string(b))

	b, err = encodeList(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestDecodeList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, decodeList([]byte(`["a","b"]`)))
	assert.Equal(t, []string{}, decodeList(nil))
	assert.Equal(t, []string{}, decodeList([]byte(`null`)))
	assert.Equal(t, []string{}, decodeList([]byte(`{broken`)))
}
