package domain

import (
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageRole(t *testing.T) {
	tests := []struct {
		in     string
		want   ImageRole
		wantOK bool
	}{
		{"model", RoleModel, true},
		{"product", RoleProduct, true},
		{"Model", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseImageRole(tt.in)
		assert.Equal(t, tt.wantOK, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestImageAsset_IsZero(t *testing.T) {
	var nilAsset *ImageAsset
	assert.True(t, nilAsset.IsZero())
	assert.True(t, (&ImageAsset{MimeType: "image/png"}).IsZero())
	assert.False(t, (&ImageAsset{Source: nopSource{}}).IsZero())
}

func TestGenerationRequest_Images(t *testing.T) {
	model := EncodedImage{Data: "bW9kZWw=", MimeType: "image/jpeg"}
	product := EncodedImage{Data: "cHJvZHVjdA==", MimeType: "image/png"}
	req := NewGenerationRequest(model, product, "prompt")

	images := req.Images()
	require.Len(t, images, 2)
	assert.Equal(t, model, images[0], "モデル画像が先頭なのだ")
	assert.Equal(t, product, images[1])
	assert.Equal(t, "prompt", req.Prompt())

	// 返したスライスを書き換えてもリクエストは変わらないのだ
	images[0].Data = "changed"
	assert.Equal(t, model, req.Model())
}

func TestGenerationResult_Message(t *testing.T) {
	t.Run("成功結果はメッセージを持たない", func(t *testing.T) {
		r := ImageResult("data:image/png;base64,AAAA")
		assert.True(t, r.IsImage())
		assert.False(t, r.IsZero())
		assert.Empty(t, r.Message())
		assert.Empty(t, r.Reason())
	})

	t.Run("画像なし: 説明文があればそのまま", func(t *testing.T) {
		r := FailureResult(ReasonNoImage, "no can do")
		assert.False(t, r.IsImage())
		assert.Equal(t, "no can do", r.Message())
	})

	t.Run("画像なし: 説明文が空なら固定メッセージ", func(t *testing.T) {
		r := FailureResult(ReasonNoImage, "  ")
		assert.Equal(t, FallbackNoImageMessage, r.Message())
	})

	t.Run("API失敗はラベル付き", func(t *testing.T) {
		r := FailureResult(ReasonAPIError, "quota exceeded")
		assert.Equal(t, "an error occurred: quota exceeded", r.Message())
	})

	t.Run("入力不足は固定メッセージ", func(t *testing.T) {
		r := FailureResult(ReasonInputMissing, "")
		assert.Equal(t, InputMissingMessage, r.Message())
	})

	t.Run("ゼロ値は結果なし", func(t *testing.T) {
		var r GenerationResult
		assert.True(t, r.IsZero())
		assert.False(t, r.IsImage())
	})
}

func TestInteractionState_MarshalText(t *testing.T) {
	b, err := json.Marshal(map[string]InteractionState{"state": StateSubmitting})
	require.NoError(t, err)
	assert.JSONEq(t, `{"state":"submitting"}`, string(b))
	assert.Equal(t, "InteractionState(9)", InteractionState(9).String())
}

func TestSnapshot_CanGenerate(t *testing.T) {
	assert.True(t, Snapshot{State: StateIdle, HasModel: true, HasProduct: true}.CanGenerate())
	assert.True(t, Snapshot{State: StateFailed, HasModel: true, HasProduct: true}.CanGenerate())
	assert.False(t, Snapshot{State: StateSubmitting, HasModel: true, HasProduct: true}.CanGenerate())
	assert.False(t, Snapshot{State: StateIdle, HasModel: true}.CanGenerate())
}

func TestErrors_Unwrap(t *testing.T) {
	cause := errors.New("file removed")
	readErr := &ReadError{Role: RoleProduct, Err: cause}
	assert.ErrorIs(t, readErr, cause)
	assert.Equal(t, "failed to read product image: file removed", readErr.Error())

	apiErr := &APIError{Err: cause}
	assert.ErrorIs(t, apiErr, cause)
	assert.Equal(t, "file removed", apiErr.Error())
}

type nopSource struct{}

func (nopSource) Open() (io.ReadCloser, error) { return io.NopCloser(nil), nil }
