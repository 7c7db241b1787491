package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shouni/gemini-ad-kit/pkg/adapters"
	"github.com/shouni/gemini-ad-kit/pkg/config"
	"github.com/shouni/gemini-ad-kit/pkg/generator"
	"github.com/shouni/gemini-ad-kit/pkg/server"
	"github.com/shouni/gemini-ad-kit/pkg/session"
)

func main() {
	if err := run(); err != nil {
		slog.Error("サーバーが異常終了しました", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.SetDefault(config.NewLogger(cfg, os.Stdout))

	if cfg.GeminiAPIKey == "" {
		slog.Warn("GEMINI_API_KEY が設定されていません。生成時にエラーになります")
	}

	adapter := adapters.NewGeminiAdapter(cfg.GeminiAPIKey, cfg.GeminiModel)

	registry, err := session.NewRegistry(func() (*generator.Studio, error) {
		return generator.NewStudio(adapter)
	}, cfg.SessionTTL)
	if err != nil {
		return err
	}

	srv, err := server.New(registry,
		server.WithMaxUploadBytes(cfg.MaxUploadBytes),
		server.WithUploadCompression(cfg.CompressUploads, cfg.CompressQuality),
		server.WithDefaultLocale(cfg.DefaultLocale),
		server.WithSecureCookie(cfg.IsProduction()),
	)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           srv.Handler(),
		ReadTimeout:       cfg.HTTPReadTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      cfg.HTTPWriteTimeout,
		IdleTimeout:       cfg.HTTPIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTPサーバーを起動しました", "addr", httpServer.Addr, "model", adapter.Model(), "env", cfg.AppEnv)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		slog.Info("シャットダウンを開始します", "signal", sig.String())
	}

	// 生成中のリクエストが終わるのを書き込みタイムアウトまで待つ
	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTPWriteTimeout)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return err
	}
	slog.Info("サーバーを停止しました")
	return nil
}
