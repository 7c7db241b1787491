package generator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/imgutil"
	"github.com/shouni/gemini-ad-kit/pkg/prompt"
)

// Studio は1人のユーザーの生成フロー (Idle → Submitting → Succeeded/Failed) を管理します。
// 選択中の2枚の画像と OptionSet を保持し、同時に進行する試行は常に1つまでです。
type Studio struct {
	generator ContentGenerator
	encode    EncodeFunc
	compose   ComposeFunc

	mu      sync.Mutex
	state   domain.InteractionState
	result  domain.GenerationResult
	model   *domain.ImageAsset
	product *domain.ImageAsset
	options domain.OptionSet
}

// Option は Studio の設定を変更します。
type Option func(*Studio)

// withEncoder は画像の変換処理を差し替えます。
func withEncoder(fn EncodeFunc) Option {
	return func(s *Studio) {
		if fn != nil {
			s.encode = fn
		}
	}
}

// withComposer は指示文の組み立て処理を差し替えます。
func withComposer(fn ComposeFunc) Option {
	return func(s *Studio) {
		if fn != nil {
			s.compose = fn
		}
	}
}

// NewStudio は依存関係を注入して Studio を初期化します。
func NewStudio(gen ContentGenerator, opts ...Option) (*Studio, error) {
	if gen == nil {
		return nil, fmt.Errorf("generator (ContentGenerator) is required")
	}
	s := &Studio{
		generator: gen,
		encode:    imgutil.Encode,
		compose:   prompt.Compose,
		state:     domain.StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// SelectImage は指定した役割の画像を差し替えます。nil を渡すと選択を解除します。
// 進行中の試行は開始時点の画像を使い続けます。
func (s *Studio) SelectImage(role domain.ImageRole, asset *domain.ImageAsset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch role {
	case domain.RoleModel:
		s.model = asset
	case domain.RoleProduct:
		s.product = asset
	default:
		return fmt.Errorf("unknown image role: %q", role)
	}
	return nil
}

// SelectModelImage はモデル画像を差し替えます。
func (s *Studio) SelectModelImage(asset *domain.ImageAsset) {
	_ = s.SelectImage(domain.RoleModel, asset)
}

// SelectProductImage は商品画像を差し替えます。
func (s *Studio) SelectProductImage(asset *domain.ImageAsset) {
	_ = s.SelectImage(domain.RoleProduct, asset)
}

// SetOptions は OptionSet を差し替えます。
func (s *Studio) SetOptions(opts domain.OptionSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.options = opts
}

// Snapshot は現在の状態のコピーを返します。
func (s *Studio) Snapshot() domain.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.Snapshot{
		State:      s.state,
		Result:     s.result,
		HasModel:   !s.model.IsZero(),
		HasProduct: !s.product.IsZero(),
		Options:    s.options,
	}
}

// Generate は1回の生成試行を最後まで実行し、その結果を返します。
//
// 既に Submitting の場合は何もせず domain.ErrBusy を返します。
// 画像が揃っていない場合は外部APIを呼ばずに Failed となり domain.ErrInputMissing を返します。
// 読み込み失敗、API呼び出しの失敗、画像なしのレスポンスはいずれも Failed となり、
// 結果と共に原因のエラーを返します。
func (s *Studio) Generate(ctx context.Context) (domain.GenerationResult, error) {
	s.mu.Lock()
	if s.state == domain.StateSubmitting {
		s.mu.Unlock()
		return domain.GenerationResult{}, domain.ErrBusy
	}
	if s.model.IsZero() || s.product.IsZero() {
		result := domain.FailureResult(domain.ReasonInputMissing, "")
		s.state = domain.StateFailed
		s.result = result
		s.mu.Unlock()
		return result, domain.ErrInputMissing
	}

	model, product, opts := s.model, s.product, s.options
	s.state = domain.StateSubmitting
	s.result = domain.GenerationResult{}
	s.mu.Unlock()

	result, err := s.attempt(ctx, model, product, opts)

	s.mu.Lock()
	if result.IsImage() {
		s.state = domain.StateSucceeded
	} else {
		s.state = domain.StateFailed
	}
	s.result = result
	s.mu.Unlock()

	return result, err
}

func (s *Studio) attempt(ctx context.Context, model, product *domain.ImageAsset, opts domain.OptionSet) (result domain.GenerationResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("generation panicked: %v", r)
			result = domain.FailureResult(domain.ReasonAPIError, err.Error())
		}
	}()

	modelImg, err := s.encode(domain.RoleModel, model)
	if err != nil {
		slog.WarnContext(ctx, "モデル画像の読み込みに失敗しました", "error", err)
		return domain.FailureResult(domain.ReasonReadError, err.Error()), err
	}
	productImg, err := s.encode(domain.RoleProduct, product)
	if err != nil {
		slog.WarnContext(ctx, "商品画像の読み込みに失敗しました", "error", err)
		return domain.FailureResult(domain.ReasonReadError, err.Error()), err
	}

	req := domain.NewGenerationRequest(modelImg, productImg, s.compose(opts))

	slog.InfoContext(ctx, "広告画像の生成をリクエストします",
		"model_mime", modelImg.MimeType,
		"product_mime", productImg.MimeType,
		"prompt_length", len(req.Prompt()))

	resp, err := s.generator.Generate(ctx, req)
	if err != nil {
		slog.ErrorContext(ctx, "生成APIの呼び出しに失敗しました", "error", err)
		return domain.FailureResult(domain.ReasonAPIError, err.Error()), err
	}
	if resp == nil {
		resp = &domain.GenerationResponse{}
	}

	result = Interpret(resp.Parts, resp.Text)
	if !result.IsImage() {
		slog.WarnContext(ctx, "レスポンスに画像が含まれていませんでした",
			"parts", len(resp.Parts), "response_text", resp.Text)
		return result, domain.ErrNoImageReturned
	}

	slog.InfoContext(ctx, "広告画像を生成しました", "parts", len(resp.Parts))
	return result, nil
}
