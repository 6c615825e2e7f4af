package icons

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ByLCY/playmat/mat"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestPresets(t *testing.T) {
	all := Presets()
	assert.Len(t, all, 21)
	ic, ok := Lookup("sword")
	require.True(t, ok)
	assert.Equal(t, "⚔", ic.Glyph)
	empty, ok := Lookup("empty")
	require.True(t, ok)
	assert.Empty(t, empty.Glyph)
	_, ok = Lookup("dragon")
	assert.False(t, ok)
}

func TestResolve(t *testing.T) {
	assert.Equal(t, "♟", Resolve("@pawn"))
	assert.Equal(t, "@dragon", Resolve("@dragon"))
	assert.Equal(t, "AB", Resolve("AB"))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindEmpty, Classify(""))
	assert.Equal(t, KindText, Classify("✦"))
	assert.Equal(t, KindImage, Classify("data:image/png;base64,AAAA"))
	assert.Equal(t, KindText, Classify("data:text/plain,hi"))
}

func TestSuggestions_CustomFirst(t *testing.T) {
	zones := []mat.Zone{{Icon: "⚔"}, {Icon: "Ω"}, {Icon: "Ω"}, {Icon: ""}}
	assert.Equal(t, []string{"⚔", "Ω"}, Used(zones))
	s := Suggestions(zones)
	require.Len(t, s, 22)
	assert.True(t, s[0].IsCustom)
	assert.Equal(t, "custom-Ω", s[0].ID)
	assert.Equal(t, "sword", s[1].ID)
}

func TestDataURLRoundTrip(t *testing.T) {
	url, err := FromBytes(pngBytes(t))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "data:image/png;base64,"))

	img, err := DecodeImage(url)
	require.NoError(t, err)
	assert.Equal(t, image.Rect(0, 0, 4, 3), img.Bounds())
}

func TestFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "icon.png")
	require.NoError(t, os.WriteFile(path, pngBytes(t), 0o644))
	url, err := FromFile(path)
	require.NoError(t, err)
	assert.True(t, IsImage(url))

	_, err = FromFile(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)
}

func TestValidateUpload(t *testing.T) {
	assert.NoError(t, ValidateUpload("image/png", 10))
	assert.ErrorIs(t, ValidateUpload("text/plain", 10), ErrNotImage)
	assert.ErrorIs(t, ValidateUpload("image/jpeg", MaxImageSize+1), ErrTooLarge)

	_, err := FromBytes([]byte("hello world"))
	assert.ErrorIs(t, err, ErrNotImage)
}

func TestDecodeImage_Errors(t *testing.T) {
	_, err := DecodeImage("✦")
	assert.ErrorIs(t, err, ErrBadDataURL)
	_, err = DecodeImage("data:image/png;base64")
	assert.ErrorIs(t, err, ErrBadDataURL)
	_, err = DecodeImage("data:image/png;base64,!!!")
	assert.ErrorIs(t, err, ErrBadDataURL)
}
