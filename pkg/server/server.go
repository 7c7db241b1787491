package server

import (
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/shouni/gemini-ad-kit/pkg/session"
)

// DefaultMaxUploadBytes はアップロード1件あたりの既定の上限です。
const DefaultMaxUploadBytes int64 = 20 << 20

// Server は広告画像スタジオの HTTP 表示層です。
type Server struct {
	registry *session.Registry
	page     *template.Template

	maxUploadBytes  int64
	compressUploads bool
	compressQuality int
	defaultLocale   string
	secureCookie    bool
}

// Option は Server の設定を変更します。
type Option func(*Server)

// WithMaxUploadBytes はアップロードの上限バイト数を設定します。
func WithMaxUploadBytes(n int64) Option {
	return func(s *Server) {
		if n > 0 {
			s.maxUploadBytes = n
		}
	}
}

// WithUploadCompression はアップロード画像を JPEG に再圧縮するかどうかを設定します。
func WithUploadCompression(enabled bool, quality int) Option {
	return func(s *Server) {
		s.compressUploads = enabled
		if quality > 0 {
			s.compressQuality = quality
		}
	}
}

// WithDefaultLocale はヘッダーからロケールを決められない場合の既定値を設定します。
func WithDefaultLocale(locale string) Option {
	return func(s *Server) {
		s.defaultLocale = locale
	}
}

// WithSecureCookie はセッション Cookie に Secure 属性を付けるかどうかを設定します。
func WithSecureCookie(secure bool) Option {
	return func(s *Server) {
		s.secureCookie = secure
	}
}

// New は Server を初期化します。
func New(registry *session.Registry, opts ...Option) (*Server, error) {
	if registry == nil {
		return nil, fmt.Errorf("registry (session.Registry) is required")
	}
	page, err := parsePage()
	if err != nil {
		return nil, fmt.Errorf("テンプレートの読み込みに失敗しました: %w", err)
	}

	s := &Server{
		registry:        registry,
		page:            page,
		maxUploadBytes:  DefaultMaxUploadBytes,
		compressQuality: 85,
		defaultLocale:   "en",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Handler はルーティング済みの http.Handler を返します。
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		AccessLog,
		middleware.Recoverer,
		Locale(s.defaultLocale),
	)

	r.Get("/healthz", s.health)

	r.Group(func(r chi.Router) {
		r.Use(s.session)

		r.Get("/", s.index)
		r.Route("/api", func(r chi.Router) {
			r.Get("/suggestions", s.suggestions)
			r.Put("/images/{role}", s.uploadImage)
			r.Delete("/images/{role}", s.clearImage)
			r.Put("/options", s.setOptions)
			r.Post("/generate", s.generate)
			r.Get("/state", s.state)
			r.Get("/result", s.result)
		})
	})

	return r
}

func (s *Server) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) fail(w http.ResponseWriter, r *http.Request, code int, key string) {
	s.json(w, code, errorResponse{Error: printerFor(r.Context()).Sprintf(key)})
}
