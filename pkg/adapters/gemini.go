package adapters

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/imgutil"
	"google.golang.org/genai"
)

// ContentModels は genai の Models サービスのうち、このパッケージが使う部分を抽象化するインターフェースです。
type ContentModels interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiAdapter は GenerationRequest を Gemini の generateContent 呼び出しに変換するアダプターです。
// クライアントは最初の呼び出し時に作られるため、APIキーが無くても起動はできます。
type GeminiAdapter struct {
	apiKey string
	model  string

	mu     sync.Mutex
	models ContentModels
}

// Option は GeminiAdapter の設定を変更します。
type Option func(*GeminiAdapter)

// WithContentModels は genai クライアントの代わりに使う実装を注入します。
func WithContentModels(m ContentModels) Option {
	return func(a *GeminiAdapter) {
		a.models = m
	}
}

// NewGeminiAdapter は GeminiAdapter を初期化します。
func NewGeminiAdapter(apiKey, model string, opts ...Option) *GeminiAdapter {
	a := &GeminiAdapter{
		apiKey: strings.TrimSpace(apiKey),
		model:  model,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Model は呼び出し先のモデル名を返します。
func (a *GeminiAdapter) Model() string {
	return a.model
}

func (a *GeminiAdapter) client(ctx context.Context) (ContentModels, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.models != nil {
		return a.models, nil
	}
	if a.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	c, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  a.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("genaiクライアントの作成に失敗しました: %w", err)
	}
	a.models = c.Models
	return a.models, nil
}

// Generate はリクエストを1回だけ送信し、最初の候補のパーツ列を返します。
// 呼び出し自体の失敗は *domain.APIError で返します。
func (a *GeminiAdapter) Generate(ctx context.Context, req domain.GenerationRequest) (*domain.GenerationResponse, error) {
	models, err := a.client(ctx)
	if err != nil {
		return nil, &domain.APIError{Err: err}
	}

	contents, err := BuildContents(req)
	if err != nil {
		return nil, &domain.APIError{Err: err}
	}

	config := &genai.GenerateContentConfig{
		ResponseModalities: []string{string(genai.ModalityImage), string(genai.ModalityText)},
	}

	resp, err := models.GenerateContent(ctx, a.model, contents, config)
	if err != nil {
		return nil, &domain.APIError{Err: err}
	}

	out := ToResponse(resp)
	slog.DebugContext(ctx, "Geminiから応答を受信しました", "model", a.model, "parts", len(out.Parts))
	return out, nil
}

// BuildContents はモデル画像、商品画像、指示文の順に並べた1つのユーザーコンテンツを作ります。
func BuildContents(req domain.GenerationRequest) ([]*genai.Content, error) {
	images := req.Images()
	parts := make([]*genai.Part, 0, len(images)+1)
	for i, img := range images {
		data, err := imgutil.Decode(img)
		if err != nil {
			return nil, fmt.Errorf("画像 %d のデコードに失敗しました: %w", i+1, err)
		}
		parts = append(parts, &genai.Part{
			InlineData: &genai.Blob{
				MIMEType: img.MimeType,
				Data:     data,
			},
		})
	}
	parts = append(parts, genai.NewPartFromText(req.Prompt()))

	return []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}, nil
}

// ToResponse は Gemini のレスポンスを domain.GenerationResponse に変換します。
// 最初の候補 (Candidate) のみを利用します。
func ToResponse(resp *genai.GenerateContentResponse) *domain.GenerationResponse {
	out := &domain.GenerationResponse{}
	if resp == nil {
		return out
	}

	var text strings.Builder
	if len(resp.Candidates) > 0 {
		candidate := resp.Candidates[0]
		if candidate.Content != nil {
			for _, part := range candidate.Content.Parts {
				if part == nil {
					continue
				}
				switch {
				case part.InlineData != nil:
					out.Parts = append(out.Parts, domain.BinaryPart{
						MimeType: part.InlineData.MIMEType,
						Data:     base64.StdEncoding.EncodeToString(part.InlineData.Data),
					})
				case part.Text != "" && !part.Thought:
					out.Parts = append(out.Parts, domain.TextPart{Value: part.Text})
					text.WriteString(part.Text)
				}
			}
		}
		// 安全フィルター等によるブロックの確認
		if text.Len() == 0 && candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
			text.WriteString(describeFinish(candidate))
		}
	}

	if text.Len() == 0 && resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" &&
		resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		fmt.Fprintf(&text, "request blocked (BlockReason: %s)", resp.PromptFeedback.BlockReason)
		if msg := strings.TrimSpace(resp.PromptFeedback.BlockReasonMessage); msg != "" {
			text.WriteString(": " + msg)
		}
	}

	out.Text = text.String()
	return out
}

func describeFinish(c *genai.Candidate) string {
	if c.FinishReason == "" {
		return ""
	}
	s := fmt.Sprintf("generation stopped (FinishReason: %s)", c.FinishReason)
	if msg := strings.TrimSpace(c.FinishMessage); msg != "" {
		s += ": " + msg
	}
	return s
}
