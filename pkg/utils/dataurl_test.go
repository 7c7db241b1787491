package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataURL(t *testing.T) {
	t.Run("プレフィックスを付けるだけなのだ", func(t *testing.T) {
		assert.Equal(t, "data:image/png;base64,X", DataURL("image/png", "X"))
	})

	t.Run("空データでも形は崩れないのだ", func(t *testing.T) {
		assert.Equal(t, "data:image/jpeg;base64,", DataURL("image/jpeg", ""))
	})
}

func TestParseDataURL(t *testing.T) {
	t.Run("DataURL の結果を元に戻せるのだ", func(t *testing.T) {
		mimeType, data, err := ParseDataURL(DataURL("image/webp", "aGVsbG8="))
		require.NoError(t, err)
		assert.Equal(t, "image/webp", mimeType)
		assert.Equal(t, []byte("hello"), data)
	})

	invalid := []string{
		"",
		"image/png;base64,AA==",
		"data:image/png;base64",
		"data:image/png,AA==",
		"data:image/png;base64,%%%",
	}
	for _, s := range invalid {
		t.Run("不正な形式: "+s, func(t *testing.T) {
			_, _, err := ParseDataURL(s)
			assert.ErrorIs(t, err, ErrInvalidDataURL)
		})
	}
}
