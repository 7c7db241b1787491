package imgutil

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime"
	"path/filepath"

	"github.com/shouni/gemini-ad-kit/pkg/domain"
	"github.com/shouni/go-remote-io/pkg/remoteio"
)

// BytesSource はメモリ上のバイト列を画像の読み出し元として扱います。
type BytesSource []byte

func (b BytesSource) Open() (io.ReadCloser, error) {
	return io.NopCloser(bytes.NewReader(b)), nil
}

// RemoteSource は remoteio.InputReader 経由で画像を読み出します。
// ローカルパスのほか gs:// や s3:// の URI も扱え、Open のたびに開き直します。
type RemoteSource struct {
	Reader remoteio.InputReader
	Path   string
}

func (r RemoteSource) Open() (io.ReadCloser, error) {
	return r.Reader.Open(context.Background(), r.Path)
}

// NewBytesAsset はアップロードされたバイト列から ImageAsset を作ります。
// MIME タイプは中身から判定し、画像でなければエラーを返します。
func NewBytesAsset(name string, data []byte) (*domain.ImageAsset, error) {
	mimeType := DetectMIME(data)
	if !IsImageMIME(mimeType) {
		return nil, fmt.Errorf("%w: %s", ErrNotImage, mimeType)
	}
	return &domain.ImageAsset{
		Name:     name,
		MimeType: mimeType,
		Size:     int64(len(data)),
		Source:   BytesSource(data),
	}, nil
}

// NewFileAsset はローカルファイルから ImageAsset を作ります。
func NewFileAsset(path string) (*domain.ImageAsset, error) {
	return NewRemoteAsset(context.Background(), remoteio.NewUniversalInputReader(nil, nil), path)
}

// NewRemoteAsset は reader が開ける場所にある画像から ImageAsset を作ります。
// 中身の判定ができない場合は拡張子から MIME タイプを推定します。
func NewRemoteAsset(ctx context.Context, reader remoteio.InputReader, path string) (*domain.ImageAsset, error) {
	if reader == nil {
		return nil, fmt.Errorf("reader is required")
	}
	rc, err := reader.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(rc, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, fmt.Errorf("画像の読み込みに失敗しました (%s): %w", path, err)
	}

	mimeType := DetectMIME(head[:n])
	if !IsImageMIME(mimeType) {
		if byExt := mime.TypeByExtension(filepath.Ext(path)); IsImageMIME(byExt) {
			mimeType = byExt
		} else {
			return nil, fmt.Errorf("%w: %s (%s)", ErrNotImage, path, mimeType)
		}
	}

	rest, err := io.Copy(io.Discard, rc)
	if err != nil {
		return nil, fmt.Errorf("画像の読み込みに失敗しました (%s): %w", path, err)
	}

	return &domain.ImageAsset{
		Name:     filepath.Base(path),
		MimeType: mimeType,
		Size:     int64(n) + rest,
		Source:   RemoteSource{Reader: reader, Path: path},
	}, nil
}
