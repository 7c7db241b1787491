package imgutil

import (
	"encoding/base64"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode_RoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{"空のファイル", []byte{}},
		{"テキスト", []byte("hello")},
		{"UTF-8ではないバイナリ", []byte{0xff, 0xfe, 0x00, 0x80, 0xc3, 0x28, 0x89, 0x50}},
		{"256バイト全パターン", allBytes()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := &domain.ImageAsset{MimeType: "image/png", Source: BytesSource(tt.data)}

			enc, err := Encode(domain.RoleModel, asset)
			require.NoError(t, err)
			assert.Equal(t, "image/png", enc.MimeType)
			assert.NotContains(t, enc.Data, "data:")

			decoded, err := Decode(enc)
			require.NoError(t, err)
			assert.Equal(t, len(tt.data), len(decoded))
			if len(tt.data) > 0 {
				assert.Equal(t, tt.data, decoded)
			}
		})
	}
}

func TestEncode_DetectsMIMEWhenUndeclared(t *testing.T) {
	asset := &domain.ImageAsset{Source: BytesSource(pngHeader)}

	enc, err := Encode(domain.RoleProduct, asset)
	require.NoError(t, err)
	assert.Equal(t, "image/png", enc.MimeType)
	assert.Equal(t, base64.StdEncoding.EncodeToString(pngHeader), enc.Data)
}

func TestEncode_ReadError(t *testing.T) {
	t.Run("未選択", func(t *testing.T) {
		_, err := Encode(domain.RoleModel, nil)
		var readErr *domain.ReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, domain.RoleModel, readErr.Role)
	})

	t.Run("選択後にファイルが削除された", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "model.png")
		require.NoError(t, os.WriteFile(path, pngHeader, 0o644))
		asset, err := NewFileAsset(path)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		_, err = Encode(domain.RoleModel, asset)
		var readErr *domain.ReadError
		require.ErrorAs(t, err, &readErr)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("読み込み途中で失敗", func(t *testing.T) {
		boom := errors.New("disk gone")
		asset := &domain.ImageAsset{MimeType: "image/png", Source: failingSource{err: boom}}

		_, err := Encode(domain.RoleProduct, asset)
		var readErr *domain.ReadError
		require.ErrorAs(t, err, &readErr)
		assert.Equal(t, domain.RoleProduct, readErr.Role)
		assert.ErrorIs(t, err, boom)
	})
}

func allBytes() []byte {
	b := make([]byte, 256)
	for i := range b {
		b[i] = byte(i)
	}
	return b
}

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00\x90w\x53\xde")

type failingSource struct {
	err error
}

func (f failingSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(&failingReader{err: f.err}), nil
}

type failingReader struct {
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	return 0, r.err
}
