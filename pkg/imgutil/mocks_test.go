package imgutil

import (
	"bytes"
	"context"
	"io"
	"os"
	"sync"
)

// mockReader は remoteio.InputReader のテスト用実装です。
type mockReader struct {
	mu     sync.Mutex
	files  map[string][]byte
	opened []string
}

func (m *mockReader) Open(_ context.Context, path string) (io.ReadCloser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, path)
	data, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *mockReader) List(_ context.Context, _ string, callback func(string) error) error {
	m.mu.Lock()
	paths := make([]string, 0, len(m.files))
	for p := range m.files {
		paths = append(paths, p)
	}
	m.mu.Unlock()
	for _, p := range paths {
		if err := callback(p); err != nil {
			return err
		}
	}
	return nil
}

func (m *mockReader) openCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.opened)
}
