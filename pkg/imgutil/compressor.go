package imgutil

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

const (
	// DefaultQuality は品質が未指定 (0以下) のときに使う JPEG 品質です。
	DefaultQuality = 85
	// MaxPixels はデコードを許す画素数の上限です。
	MaxPixels = 40_000_000
)

// ErrImageTooLarge はヘッダーの縦横サイズが MaxPixels を超えていることを示します。
var ErrImageTooLarge = errors.New("image dimensions exceed the decode limit")

// CompressToJPEG は商品写真やモデル写真 (PNG, GIF, JPEG) を JPEG に変換します。
// 透過部分は白で塗りつぶします。quality は 1〜100 に丸めます。
// ピクセルを展開する前にヘッダーを読み、画素数が MaxPixels を超える場合は ErrImageTooLarge を返します。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrImageTooLarge, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	// 透過PNGの背景が黒くならないようにする
	bounds := src.Bounds()
	canvas := image.NewRGBA(bounds)
	draw.Draw(canvas, bounds, image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(canvas, bounds, src, bounds.Min, draw.Over)

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, canvas, &jpeg.Options{Quality: clampQuality(quality)}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ShrinkUpload はアップロード画像を JPEG に再圧縮し、元より小さくなった場合だけ差し替えます。
// デコードできない形式 (webp など) や圧縮で大きくなる場合は元のデータと MIME タイプを返します。
func ShrinkUpload(data []byte, mimeType string, quality int) ([]byte, string) {
	if mimeType == "image/jpeg" && clampQuality(quality) >= 100 {
		return data, mimeType
	}
	compressed, err := CompressToJPEG(data, quality)
	if err != nil || len(compressed) >= len(data) {
		return data, mimeType
	}
	return compressed, "image/jpeg"
}

func clampQuality(q int) int {
	switch {
	case q <= 0:
		return DefaultQuality
	case q > 100:
		return 100
	}
	return q
}
