package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/shouni/gemini-ad-kit/pkg/generator"
)

// SessionCookieName はセッションIDを保持する Cookie の名前です。
const SessionCookieName = "adstudio_session"

type responseWriter struct {
	http.ResponseWriter
	status int
	bytes  int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytes += n
	return n, err
}

// AccessLog はリクエストごとに1行のアクセスログを slog で出力します。
func AccessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rw, r)

		level := slog.LevelInfo
		if rw.status >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		slog.Log(r.Context(), level, "HTTPリクエスト",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.status,
			"bytes", rw.bytes,
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

type studioContextKey struct{}

// session は Cookie のセッションIDから Studio を解決して context に格納します。
// 新しいセッションを作った場合は Cookie を発行し直します。
func (s *Server) session(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var id string
		if c, err := r.Cookie(SessionCookieName); err == nil {
			id = c.Value
		}

		newID, studio, created, err := s.registry.Resolve(r.Context(), id)
		if err != nil {
			slog.ErrorContext(r.Context(), "セッションの解決に失敗しました", "error", err)
			s.fail(w, r, http.StatusInternalServerError, msgInternal)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     SessionCookieName,
			Value:    newID,
			Path:     "/",
			MaxAge:   int(s.registry.TTL().Seconds()),
			HttpOnly: true,
			Secure:   s.secureCookie,
			SameSite: http.SameSiteLaxMode,
		})
		if created && id != "" {
			slog.InfoContext(r.Context(), "期限切れのセッションを作り直しました", "old_session_id", id, "session_id", newID)
		}

		ctx := context.WithValue(r.Context(), studioContextKey{}, studio)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func studioFromContext(ctx context.Context) *generator.Studio {
	studio, _ := ctx.Value(studioContextKey{}).(*generator.Studio)
	return studio
}
