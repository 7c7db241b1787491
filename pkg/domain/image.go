package domain

import "io"

// ImageRole は入力画像の役割です。リクエスト内の並び順もこの順序 (model → product) で固定です。
type ImageRole string

const (
	RoleModel   ImageRole = "model"
	RoleProduct ImageRole = "product"
)

// ParseImageRole は文字列を ImageRole に変換します。
func ParseImageRole(s string) (ImageRole, bool) {
	switch ImageRole(s) {
	case RoleModel, RoleProduct:
		return ImageRole(s), true
	}
	return "", false
}

// ImageSource は画像バイナリの読み出し元です。
// 読み出しは生成の直前に行われるため、選択後にファイルが消えていれば Open/Read が失敗します。
type ImageSource interface {
	Open() (io.ReadCloser, error)
}

// ImageAsset はユーザーが選択した画像と、その宣言済み MIME タイプです。
type ImageAsset struct {
	Name     string
	MimeType string
	Size     int64
	Source   ImageSource
}

// IsZero は画像が未選択かどうかを返します。
func (a *ImageAsset) IsZero() bool {
	return a == nil || a.Source == nil
}

// EncodedImage は送信用に base64 化された画像です (data URI プレフィックスなし)。
type EncodedImage struct {
	Data     string
	MimeType string
}

// OptionSet は広告画像の4つの任意項目です。空文字はプロンプト合成時に既定フレーズへ置き換えられます。
type OptionSet struct {
	Background      string `json:"background"`
	Clothing        string `json:"clothing"`
	Expression      string `json:"expression"`
	ProductPosition string `json:"productPosition"`
}

// GenerationRequest は1回の生成試行で送信する完成済みペイロードです。
// 生成後は変更できません。
type GenerationRequest struct {
	model   EncodedImage
	product EncodedImage
	prompt  string
}

// NewGenerationRequest は GenerationRequest を組み立てます。
func NewGenerationRequest(model, product EncodedImage, prompt string) GenerationRequest {
	return GenerationRequest{model: model, product: product, prompt: prompt}
}

func (r GenerationRequest) Model() EncodedImage   { return r.model }
func (r GenerationRequest) Product() EncodedImage { return r.product }
func (r GenerationRequest) Prompt() string        { return r.prompt }

// Images はリクエストに含める画像を送信順で返します。
func (r GenerationRequest) Images() []EncodedImage {
	return []EncodedImage{r.model, r.product}
}
