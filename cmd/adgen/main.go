package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/shouni/gemini-ad-kit/pkg/adapters"
	"github.com/shouni/gemini-ad-kit/pkg/config"
	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/gemini-ad-kit/pkg/generator"
	"github.com/shouni/gemini-ad-kit/pkg/imgutil"
	"github.com/shouni/gemini-ad-kit/pkg/utils"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

type options struct {
	model      string
	product    string
	background string
	clothing   string
	expression string
	position   string
	out        string
}

func main() {
	var o options
	flag.StringVar(&o.model, "model", "", "Path or gs:// URI of the model (face) image")
	flag.StringVar(&o.product, "product", "", "Path or gs:// URI of the product image")
	flag.StringVar(&o.background, "background", "", "Background / setting (optional)")
	flag.StringVar(&o.clothing, "clothing", "", "Model clothing (optional)")
	flag.StringVar(&o.expression, "expression", "", "Model expression (optional)")
	flag.StringVar(&o.position, "position", "", "Product position (optional)")
	flag.StringVar(&o.out, "out", "", "Output file (default: generated-ad-image.<ext>)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	slog.SetDefault(config.NewLogger(cfg, os.Stderr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	path, err := run(ctx, cfg, o)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	fmt.Println(path)
}

func run(ctx context.Context, cfg *config.Config, o options) (string, error) {
	studio, err := generator.NewStudio(adapters.NewGeminiAdapter(cfg.GeminiAPIKey, cfg.GeminiModel))
	if err != nil {
		return "", err
	}

	reader, closeReader, err := newInputReader(ctx, o.model, o.product)
	if err != nil {
		return "", err
	}
	defer closeReader()

	if strings.TrimSpace(o.model) != "" {
		asset, err := imgutil.NewRemoteAsset(ctx, reader, o.model)
		if err != nil {
			return "", fmt.Errorf("model image: %w", err)
		}
		studio.SelectModelImage(asset)
	}
	if strings.TrimSpace(o.product) != "" {
		asset, err := imgutil.NewRemoteAsset(ctx, reader, o.product)
		if err != nil {
			return "", fmt.Errorf("product image: %w", err)
		}
		studio.SelectProductImage(asset)
	}

	studio.SetOptions(domain.OptionSet{
		Background:      o.background,
		Clothing:        o.clothing,
		Expression:      o.expression,
		ProductPosition: o.position,
	})

	result, err := studio.Generate(ctx)
	if err != nil {
		if msg := result.Message(); msg != "" {
			return "", errors.New(msg)
		}
		return "", err
	}

	mimeType, data, err := utils.ParseDataURL(result.DataURL())
	if err != nil {
		return "", err
	}

	out := o.out
	if out == "" {
		out = "generated-ad-image" + imgutil.ExtensionFor(mimeType)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("出力ディレクトリの作成に失敗しました: %w", err)
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", fmt.Errorf("画像の書き込みに失敗しました: %w", err)
	}
	return out, nil
}

// newInputReader は入力パスを開く Reader を返します。
// gs:// の入力があるときだけ GCS クライアントを作ります。
func newInputReader(ctx context.Context, paths ...string) (remoteio.InputReader, func(), error) {
	var gcsClient *storage.Client
	for _, p := range paths {
		if remoteio.IsGCSURI(p) {
			c, err := storage.NewClient(ctx)
			if err != nil {
				return nil, nil, fmt.Errorf("GCSクライアントの初期化に失敗しました: %w", err)
			}
			gcsClient = c
			break
		}
	}
	closeFn := func() {
		if gcsClient != nil {
			if err := gcsClient.Close(); err != nil {
				slog.WarnContext(ctx, "GCSクライアントのクローズに失敗しました", "error", err)
			}
		}
	}
	return remoteio.NewUniversalInputReader(gcsClient, nil), closeFn, nil
}
