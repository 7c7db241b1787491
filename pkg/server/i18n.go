package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// 翻訳キー。英語の文言をそのままキーにしています。
const (
	msgInputMissing   = domain.InputMissingMessage
	msgNoImage        = "no image: %s"
	msgNoImageDefault = domain.FallbackNoImageMessage
	msgErrorLabel     = domain.ErrorLabel + ": %s"
	msgLoader         = "AI is creating..."
	msgBusy           = "generation already in progress"
	msgNotImage       = "the uploaded file is not an image"
	msgTooLarge       = "the uploaded file is too large"
	msgMissingFile    = "no file was uploaded"
	msgUnknownRole    = "unknown image role"
	msgBadOptions     = "invalid options"
	msgNoResult       = "no generated image yet"
	msgInternal       = "internal server error"

	msgTitle        = "AI Ad Image Studio"
	msgCustomize    = "Customize"
	msgModelImage   = "Model photo (face)"
	msgProductImage = "Product photo"
	msgBackground   = "Background"
	msgClothing     = "Clothing"
	msgExpression   = "Expression"
	msgPosition     = "Product position"
	msgGenerate     = "Generate image"
	msgGenerating   = "Generating..."
	msgResult       = "Result"
	msgPlaceholder  = "The result will appear here"
	msgDownload     = "Download image"
	msgChoose       = "Type or pick a suggestion"
)

var supportedLocales = []language.Tag{
	language.English,
	language.Vietnamese,
}

var localeMatcher = language.NewMatcher(supportedLocales)

var messages = newCatalog()

func newCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))

	en := map[string]string{
		msgNoImage: "%s",
	}
	vi := map[string]string{
		msgInputMissing:   "Vui lòng tải lên cả ảnh người mẫu và ảnh sản phẩm.",
		msgNoImage:        "Không thể tạo ảnh. Phản hồi từ AI: %s",
		msgNoImageDefault: "Không có hình ảnh nào được trả về.",
		msgErrorLabel:     "Đã xảy ra lỗi: %s",
		msgLoader:         "AI đang sáng tạo...",
		msgBusy:           "Đang tạo ảnh, vui lòng đợi.",
		msgNotImage:       "Tệp đã tải lên không phải là ảnh.",
		msgTooLarge:       "Tệp đã tải lên quá lớn.",
		msgMissingFile:    "Chưa có tệp nào được tải lên.",
		msgUnknownRole:    "Loại ảnh không hợp lệ.",
		msgBadOptions:     "Tùy chọn không hợp lệ.",
		msgNoResult:       "Chưa có ảnh nào được tạo.",
		msgInternal:       "Lỗi máy chủ nội bộ.",
		msgTitle:          "Studio Ảnh Quảng Cáo AI",
		msgCustomize:      "Tùy Chỉnh",
		msgModelImage:     "Ảnh Người Mẫu (Khuôn mặt)",
		msgProductImage:   "Ảnh Sản Phẩm",
		msgBackground:     "Bối cảnh",
		msgClothing:       "Trang phục",
		msgExpression:     "Biểu cảm",
		msgPosition:       "Vị trí sản phẩm",
		msgGenerate:       "Tạo Ảnh",
		msgGenerating:     "Đang Tạo Ảnh...",
		msgResult:         "Kết Quả",
		msgPlaceholder:    "Kết quả sẽ xuất hiện ở đây",
		msgDownload:       "Tải ảnh về",
		msgChoose:         "Nhập hoặc chọn một gợi ý",
	}

	for key, msg := range en {
		_ = b.SetString(language.English, key, msg)
	}
	for key, msg := range vi {
		_ = b.SetString(language.Vietnamese, key, msg)
	}
	return b
}

type localeContextKey struct{}

// Locale は X-Locale ヘッダー、Accept-Language の順にロケールを決めて context に格納するミドルウェアです。
func Locale(fallback string) func(http.Handler) http.Handler {
	def := matchLocale(fallback)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tag := detectLocale(r, def)
			ctx := context.WithValue(r.Context(), localeContextKey{}, tag)
			w.Header().Set("Content-Language", tag.String())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func detectLocale(r *http.Request, fallback language.Tag) language.Tag {
	if v := strings.TrimSpace(r.Header.Get("X-Locale")); v != "" {
		if tag, err := language.Parse(v); err == nil {
			if matched, ok := match(tag); ok {
				return matched
			}
		}
	}
	if v := r.Header.Get("Accept-Language"); v != "" {
		if tags, _, err := language.ParseAcceptLanguage(v); err == nil && len(tags) > 0 {
			if matched, ok := match(tags...); ok {
				return matched
			}
		}
	}
	return fallback
}

func match(tags ...language.Tag) (language.Tag, bool) {
	_, idx, conf := localeMatcher.Match(tags...)
	if conf == language.No {
		return language.Und, false
	}
	return supportedLocales[idx], true
}

func matchLocale(s string) language.Tag {
	if tag, err := language.Parse(s); err == nil {
		if matched, ok := match(tag); ok {
			return matched
		}
	}
	return language.English
}

// LocaleFromContext は context のロケールを返します。未設定なら英語です。
func LocaleFromContext(ctx context.Context) language.Tag {
	if tag, ok := ctx.Value(localeContextKey{}).(language.Tag); ok {
		return tag
	}
	return language.English
}

func printerFor(ctx context.Context) *message.Printer {
	return message.NewPrinter(LocaleFromContext(ctx), message.Catalog(messages))
}

// localizeResult は GenerationResult の失敗メッセージをロケールに合わせて組み立てます。
// 英語の場合は domain.GenerationResult.Message と同じ文言になります。
func localizeResult(p *message.Printer, r domain.GenerationResult) string {
	switch r.Reason() {
	case "":
		return ""
	case domain.ReasonInputMissing:
		return p.Sprintf(msgInputMissing)
	case domain.ReasonNoImage:
		detail := r.Detail()
		if strings.TrimSpace(detail) == "" {
			detail = p.Sprintf(msgNoImageDefault)
		}
		return p.Sprintf(msgNoImage, detail)
	default:
		return p.Sprintf(msgErrorLabel, r.Detail())
	}
}
