package domain

// ResponsePart は外部APIのレスポンスに含まれる1パーツです。
// BinaryPart か TextPart のどちらかです。
type ResponsePart interface {
	isResponsePart()
}

// BinaryPart はインライン画像パーツです。Data は base64 文字列です。
type BinaryPart struct {
	MimeType string
	Data     string
}

// TextPart はテキストパーツです。
type TextPart struct {
	Value string
}

func (BinaryPart) isResponsePart() {}
func (TextPart) isResponsePart()   {}

// GenerationResponse は最初の候補のパーツ列と、テキスト出力をまとめた文字列です。
type GenerationResponse struct {
	Parts []ResponsePart
	Text  string
}
