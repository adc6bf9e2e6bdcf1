package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUTF8Passthrough(t *testing.T) {
	d, err := New("")
	require.NoError(t, err)
	assert.Equal(t, Default, d.Name())

	got, err := d.Decode([]byte("Алиса"))
	require.NoError(t, err)
	assert.Equal(t, "Алиса", got)
}

func TestDecodeWindows1251Fallback(t *testing.T) {
	d, err := New("Windows-1251")
	require.NoError(t, err)

	// "Привет" in Windows-1251.
	got, err := d.Decode([]byte{0xcf, 0xf0, 0xe8, 0xe2, 0xe5, 0xf2})
	require.NoError(t, err)
	assert.Equal(t, "Привет", got)
}

func TestDecodeFallbackDisabled(t *testing.T) {
	d, err := New(None)
	require.NoError(t, err)

	_, err = d.Decode([]byte{0xcf, 0xf0})
	require.ErrorIs(t, err, ErrInvalid)

	got, err := d.Decode([]byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", got)
}

func TestNewUnknown(t *testing.T) {
	_, err := New("utf-7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "windows-1251")
}

func TestNames(t *testing.T) {
	assert.Contains(t, Names(), "koi8-r")
	assert.Contains(t, Names(), None)
}
