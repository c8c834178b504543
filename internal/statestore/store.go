package statestore

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Store persists namespaced state blobs across reloads. C'est l'équivalent
// serveur des blobs localStorage du front : un espace de nommage par magasin
// d'état ("configurator", "quote-request"), un blob JSON par clé.
type Store interface {
	Save(namespace, key string, data []byte) error
	Load(namespace, key string) ([]byte, bool, error)
	Delete(namespace, key string) error
}

// MemoryStore is the test/default implementation.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: map[string][]byte{}}
}

func blobKey(namespace, key string) string { return namespace + "/" + key }

func (s *MemoryStore) Save(namespace, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[blobKey(namespace, key)] = cp
	return nil
}

func (s *MemoryStore) Load(namespace, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.blobs[blobKey(namespace, key)]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return cp, true, nil
}

func (s *MemoryStore) Delete(namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.blobs, blobKey(namespace, key))
	return nil
}

// FileStore persists blobs under a base directory, one file per key.
type FileStore struct {
	base string
}

var errBadName = errors.New("invalid namespace or key")

func NewFileStore(base string) (*FileStore, error) {
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{base: base}, nil
}

func (s *FileStore) path(namespace, key string) (string, error) {
	if strings.ContainsAny(namespace, "/\\.") || strings.ContainsAny(key, "/\\") {
		return "", errBadName
	}
	return filepath.Join(s.base, namespace, key+".json"), nil
}

func (s *FileStore) Save(namespace, key string, data []byte) error {
	p, err := s.path(namespace, key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	return os.WriteFile(p, data, 0o644)
}

func (s *FileStore) Load(namespace, key string) ([]byte, bool, error) {
	p, err := s.path(namespace, key)
	if err != nil {
		return nil, false, err
	}
	b, err := os.ReadFile(p)
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *FileStore) Delete(namespace, key string) error {
	p, err := s.path(namespace, key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
