// Package cas implements the receipt store that remembers the last run of
// each install sequence.
package cas

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/chargeup/internal/core/domain"
	"go.trai.ch/chargeup/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ReceiptStore = (*Store)(nil)

// StoreFilename is the name of the receipt file inside the state directory.
const StoreFilename = "receipts.json"

// Store implements ports.ReceiptStore using a flat JSON file.
type Store struct {
	path  string
	mu    sync.RWMutex
	cache map[string]domain.Receipt
}

// DefaultPath returns the receipt file location under the user cache directory.
func DefaultPath() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", errors.Join(domain.ErrStoreReadFailed, zerr.Wrap(err, "cannot locate cache directory"))
	}
	return filepath.Join(dir, "chargeup", StoreFilename), nil
}

// NewStore creates a new ReceiptStore backed by the file at the given path.
func NewStore(path string) (*Store, error) {
	s := &Store{
		path:  filepath.Clean(path),
		cache: make(map[string]domain.Receipt),
	}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Store) load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errors.Join(domain.ErrStoreReadFailed, zerr.With(err, "path", s.path))
	}

	if len(data) == 0 {
		return nil
	}

	if err := json.Unmarshal(data, &s.cache); err != nil {
		return errors.Join(domain.ErrStoreReadFailed, zerr.With(zerr.Wrap(err, "corrupt receipt file"), "path", s.path))
	}

	return nil
}

// save writes the cache to a temporary file and renames it into place.
// Callers must hold the write lock.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.cache, "", "  ")
	if err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.Wrap(err, "failed to marshal receipts"))
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", dir))
	}

	tmp, err := os.CreateTemp(dir, "."+StoreFilename+"-*")
	if err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", dir))
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // already renamed on success

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", tmp.Name()))
	}
	if err := tmp.Close(); err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", tmp.Name()))
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.Join(domain.ErrStoreWriteFailed, zerr.With(err, "path", s.path))
	}

	return nil
}

// Get retrieves the receipt for a sequence.
func (s *Store) Get(sequence string) (*domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.cache[sequence]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

// Put stores the receipt and persists the whole file.
func (s *Store) Put(receipt domain.Receipt) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cache[receipt.Sequence] = receipt
	return s.save()
}

// List returns every receipt ordered by sequence name.
func (s *Store) List() ([]domain.Receipt, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	receipts := make([]domain.Receipt, 0, len(s.cache))
	for _, r := range s.cache {
		receipts = append(receipts, r)
	}
	slices.SortFunc(receipts, func(a, b domain.Receipt) int {
		return strings.Compare(a.Sequence, b.Sequence)
	})
	return receipts, nil
}
