package imgutil

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
)

var errNoSource = errors.New("no image selected")

// Encode は選択済み画像を読み出し、data URI プレフィックスなしの base64 文字列に変換します。
// 読み込みに失敗した場合は *domain.ReadError を返します。サイズ上限はここでは設けません。
func Encode(role domain.ImageRole, asset *domain.ImageAsset) (domain.EncodedImage, error) {
	if asset.IsZero() {
		return domain.EncodedImage{}, &domain.ReadError{Role: role, Err: errNoSource}
	}

	rc, err := asset.Source.Open()
	if err != nil {
		return domain.EncodedImage{}, &domain.ReadError{Role: role, Err: err}
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return domain.EncodedImage{}, &domain.ReadError{Role: role, Err: fmt.Errorf("read: %w", err)}
	}

	mimeType := asset.MimeType
	if mimeType == "" {
		mimeType = DetectMIME(data)
	}

	return domain.EncodedImage{
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}, nil
}

// Decode は Encode の逆変換です。
func Decode(img domain.EncodedImage) ([]byte, error) {
	return base64.StdEncoding.DecodeString(img.Data)
}
