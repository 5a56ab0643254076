package blob

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"
)

type object struct {
	data        []byte
	contentType string
	modified    time.Time
}

// Memory is a process-local Store used in tests and throwaway setups.
type Memory struct {
	mu      sync.RWMutex
	objects map[string]object
	baseURL string
}

func NewMemory(baseURL string) *Memory {
	return &Memory{objects: map[string]object{}, baseURL: baseURL}
}

func (m *Memory) Driver() Driver { return DriverMemory }

func (m *Memory) URL(key string) string { return publicURL(m.baseURL, key) }

func (m *Memory) Put(_ context.Context, key string, r io.Reader, contentType string) (Info, error) {
	k, err := SanitizeKey(key)
	if err != nil {
		return Info{}, err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return Info{}, err
	}
	obj := object{data: b, contentType: contentType, modified: time.Now().UTC()}
	m.mu.Lock()
	m.objects[k] = obj
	m.mu.Unlock()
	return m.info(k, obj), nil
}

func (m *Memory) Get(_ context.Context, key string) (Info, io.ReadCloser, error) {
	m.mu.RLock()
	obj, ok := m.objects[key]
	m.mu.RUnlock()
	if !ok {
		return Info{}, nil, ErrNotFound
	}
	return m.info(key, obj), io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *Memory) info(key string, obj object) Info {
	return Info{Key: key, Size: int64(len(obj.data)), ContentType: obj.contentType, URL: m.URL(key), LastModified: obj.modified}
}
