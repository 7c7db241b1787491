package imgutil

import (
	"errors"
	"mime"
	"net/http"
	"strings"
)

// sniffLen は http.DetectContentType が参照する最大バイト数です。
const sniffLen = 512

// ErrNotImage は画像として扱えないデータであることを示します。
var ErrNotImage = errors.New("not an image")

// DetectMIME はデータの先頭から MIME タイプを判定します。パラメータ部分は取り除きます。
func DetectMIME(data []byte) string {
	ct := http.DetectContentType(data)
	if mt, _, err := mime.ParseMediaType(ct); err == nil {
		return mt
	}
	return ct
}

// IsImageMIME は MIME タイプが画像かどうかを返します。
func IsImageMIME(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/")
}

// ExtensionFor は MIME タイプに対応するファイル拡張子を返します。不明な場合は ".png" です。
func ExtensionFor(mimeType string) string {
	switch strings.ToLower(mimeType) {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ".png"
	}
}
