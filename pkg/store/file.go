package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// CacheFilePrefix starts every credential file name.
const CacheFilePrefix = ".shiki_"

// fileNameReplacer keeps app names from escaping the store directory.
var fileNameReplacer = strings.NewReplacer("/", "_", "\\", "_", ":", "_", "..", "_")

// CacheFileName returns the credential file name for an application:
// the prefix plus the lower-cased, underscore-joined app name with path
// separators and ".." replaced by underscores.
func CacheFileName(appName string) string {
	name := strings.Join(strings.Fields(strings.ToLower(appName)), "_")
	return CacheFilePrefix + fileNameReplacer.Replace(name) + ".json"
}

// FileStore keeps one JSON file per application under a directory. Every
// operation reads the file into a MemoryStore, applies itself there and
// writes the result back atomically.
//
// Mutations are serialised within the process only; two processes sharing
// a directory can lose each other's writes.
type FileStore struct {
	dir        string
	passphrase []byte

	mu     sync.Mutex
	closed bool
}

var _ Store = (*FileStore)(nil)

// FileOption configures a FileStore
type FileOption func(*FileStore)

// WithPassphrase encrypts credential files at rest.
func WithPassphrase(passphrase string) FileOption {
	return func(s *FileStore) {
		if passphrase != "" {
			s.passphrase = []byte(passphrase)
		}
	}
}

// NewFileStore returns a closed file store rooted at dir ("." when empty).
func NewFileStore(dir string, opts ...FileOption) *FileStore {
	if dir == "" {
		dir = "."
	}
	s := &FileStore{dir: dir, closed: true}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *FileStore) backend() string { return DriverFile }

// Path returns the credential file path for appName.
func (s *FileStore) Path(appName string) string {
	return filepath.Join(s.dir, CacheFileName(appName))
}

func (s *FileStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return newStoreError(DriverFile, "open", "", "failed to create directory", err)
	}
	s.closed = false
	return nil
}

// Close marks the store closed. Data was already flushed by each mutation.
func (s *FileStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *FileStore) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// load reads appName's file into a fresh MemoryStore.
func (s *FileStore) load(appName string) (*MemoryStore, error) {
	mem := NewMemoryStore()
	mem.closed = false

	data, err := os.ReadFile(s.Path(appName))
	if errors.Is(err, os.ErrNotExist) {
		return mem, nil
	}
	if err != nil {
		return nil, newStoreError(DriverFile, "read", appName, "", err)
	}
	if isSealed(data) {
		if data, err = unseal(data, s.passphrase); err != nil {
			return nil, newStoreError(DriverFile, "read", appName, "failed to decrypt", err)
		}
	}
	if len(data) == 0 {
		return mem, nil
	}
	if err := json.Unmarshal(data, &mem.apps); err != nil {
		return nil, newStoreError(DriverFile, "read", appName, "corrupt credential file", err)
	}
	if mem.apps == nil {
		mem.apps = make(map[string]*App)
	}
	return mem, nil
}

// persist writes the snapshot, or removes the file once it is empty.
func (s *FileStore) persist(appName string, apps map[string]*App) error {
	target := s.Path(appName)
	if len(apps) == 0 {
		if err := os.Remove(target); err != nil && !errors.Is(err, os.ErrNotExist) {
			return newStoreError(DriverFile, "write", appName, "", err)
		}
		return nil
	}

	data, err := json.MarshalIndent(apps, "", "  ")
	if err != nil {
		return newStoreError(DriverFile, "write", appName, "failed to marshal JSON", err)
	}
	data = append(data, '\n')
	if len(s.passphrase) > 0 {
		if data, err = seal(data, s.passphrase); err != nil {
			return newStoreError(DriverFile, "write", appName, "failed to encrypt", err)
		}
	}
	if err := writeAtomic(s.dir, target, data); err != nil {
		return newStoreError(DriverFile, "write", appName, "", err)
	}
	return nil
}

// writeAtomic writes to a temp file in the same directory, then renames.
func writeAtomic(dir, target string, data []byte) error {
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	if err := tmpFile.Chmod(0600); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to chmod temp file: %w", err)
	}
	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, target); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

func (s *FileStore) get(ctx context.Context, appName string) (*App, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	mem, err := s.load(appName)
	if err != nil {
		return nil, err
	}
	return mem.get(ctx, appName)
}

func (s *FileStore) update(ctx context.Context, appName string, fn func(*App) (*App, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	mem, err := s.load(appName)
	if err != nil {
		return err
	}
	if err := mem.update(ctx, appName, fn); err != nil {
		return err
	}
	return s.persist(appName, mem.snapshot())
}

func (s *FileStore) Save(ctx context.Context, rec Record) error {
	return saveDoc(ctx, s, rec)
}

func (s *FileStore) FetchByAccessToken(ctx context.Context, appName, accessToken string) (*Record, error) {
	return fetchDocByAccessToken(ctx, s, appName, accessToken)
}

func (s *FileStore) FetchByAuthCode(ctx context.Context, appName, authCode string) (*Record, error) {
	return fetchDocByAuthCode(ctx, s, appName, authCode)
}

func (s *FileStore) DeleteToken(ctx context.Context, appName, accessToken string) error {
	return deleteDocToken(ctx, s, appName, accessToken)
}

func (s *FileStore) DeleteAllTokens(ctx context.Context, appName string) error {
	return deleteDocApp(ctx, s, appName)
}
