package domain

import "strings"

const (
	// FallbackNoImageMessage はレスポンスに画像もテキストも無かった場合の固定メッセージです。
	FallbackNoImageMessage = "no image returned"
	// ErrorLabel はAPI呼び出しや読み込みの失敗メッセージに付与するラベルです。
	ErrorLabel = "an error occurred"
	// InputMissingMessage は画像が揃っていない状態で生成した場合の固定メッセージです。
	InputMissingMessage = "please upload both the model image and the product image"
)

// FailureReason は失敗の分類です。表示層での翻訳に使います。
type FailureReason string

const (
	ReasonInputMissing FailureReason = "input_missing"
	ReasonReadError    FailureReason = "read_error"
	ReasonNoImage      FailureReason = "no_image_returned"
	ReasonAPIError     FailureReason = "api_error"
)

// GenerationResult は1回の試行の結果です。Image か Failure のどちらか一方だけを持ちます。
type GenerationResult struct {
	dataURL string
	reason  FailureReason
	detail  string
}

// ImageResult は data URL を持つ成功結果を作ります。
func ImageResult(dataURL string) GenerationResult {
	return GenerationResult{dataURL: dataURL}
}

// FailureResult は失敗結果を作ります。detail はAPIの説明文やエラーの文言です。
func FailureResult(reason FailureReason, detail string) GenerationResult {
	return GenerationResult{reason: reason, detail: detail}
}

// IsImage は成功結果かどうかを返します。
func (r GenerationResult) IsImage() bool {
	return r.reason == "" && r.dataURL != ""
}

// IsZero は結果がまだ無いかどうかを返します。
func (r GenerationResult) IsZero() bool {
	return r.reason == "" && r.dataURL == ""
}

// DataURL は成功時の data URL を返します。
func (r GenerationResult) DataURL() string {
	return r.dataURL
}

// Reason は失敗の分類を返します。成功時は空です。
func (r GenerationResult) Reason() FailureReason {
	return r.reason
}

// Detail は失敗理由の生の文言を返します。
func (r GenerationResult) Detail() string {
	return r.detail
}

// Message はユーザー向けの (既定言語の) 失敗メッセージです。成功時は空です。
func (r GenerationResult) Message() string {
	switch r.reason {
	case "":
		return ""
	case ReasonInputMissing:
		return InputMissingMessage
	case ReasonNoImage:
		if strings.TrimSpace(r.detail) == "" {
			return FallbackNoImageMessage
		}
		return r.detail
	default:
		return ErrorLabel + ": " + r.detail
	}
}
