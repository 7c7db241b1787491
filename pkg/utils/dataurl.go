package utils

import (
	"encoding/base64"
	"errors"
	"strings"
)

// ErrInvalidDataURL は data URL の形式が不正であることを示します。
var ErrInvalidDataURL = errors.New("invalid data URL")

// DataURL は MIME タイプと base64 文字列から data URL を組み立てます。
// data は既に base64 エンコード済みの文字列を渡します。
func DataURL(mimeType, data string) string {
	return "data:" + mimeType + ";base64," + data
}

// ParseDataURL は DataURL で作った文字列を MIME タイプとバイナリに戻します。
func ParseDataURL(s string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	mimeType, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, ErrInvalidDataURL
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, errors.Join(ErrInvalidDataURL, err)
	}
	return mimeType, data, nil
}
