package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrInputMissing はモデル画像と商品画像の両方が揃っていないことを示します。
	ErrInputMissing = errors.New("model image and product image are both required")
	// ErrBusy は既に生成中であることを示します。
	ErrBusy = errors.New("generation already in progress")
	// ErrNoImageReturned はAPIが画像を返さなかったことを示します。
	ErrNoImageReturned = errors.New(FallbackNoImageMessage)
	// ErrMissingAPIKey はAPIキーが設定されていないことを示します。
	ErrMissingAPIKey = errors.New("GEMINI_API_KEY is not set")
)

// ReadError は選択済み画像の読み込み失敗です。
type ReadError struct {
	Role ImageRole
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read %s image: %v", e.Role, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// APIError は外部APIの呼び出し自体の失敗 (認証、クォータ、通信など) です。
type APIError struct {
	Err error
}

func (e *APIError) Error() string {
	return e.Err.Error()
}

func (e *APIError) Unwrap() error { return e.Err }
