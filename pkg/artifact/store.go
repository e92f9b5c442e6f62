package artifact

//go:generate mockgen -destination=mocks/mock_store.go -package=mocks . Store

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("component", "artifact")

// Store receives the rendered figures and tables. Paths are relative and slash separated.
type Store interface {
	WriteFile(path string, data []byte) error
}

// DirStore writes artifacts below a root directory, creating parents as needed.
type DirStore struct {
	Root string
}

func NewDirStore(root string) *DirStore {
	return &DirStore{Root: root}
}

func (s *DirStore) WriteFile(path string, data []byte) error {
	if filepath.IsAbs(path) {
		return errors.Errorf("artifact path %q must be relative", path)
	}

	target := filepath.Join(s.Root, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errors.Wrapf(err, "can not create directory for %s", target)
	}

	if err := os.WriteFile(target, data, 0644); err != nil {
		return errors.Wrapf(err, "can not write %s", target)
	}

	log.Debugf("wrote %s (%d bytes)", target, len(data))
	return nil
}

// RecordingStore forwards writes to another store and remembers the written paths.
// It is safe for concurrent use.
type RecordingStore struct {
	Store

	mu    sync.Mutex
	paths []string
	bytes int
}

func NewRecordingStore(store Store) *RecordingStore {
	return &RecordingStore{Store: store}
}

func (s *RecordingStore) WriteFile(path string, data []byte) error {
	if err := s.Store.WriteFile(path, data); err != nil {
		return err
	}

	s.mu.Lock()
	s.paths = append(s.paths, path)
	s.bytes += len(data)
	s.mu.Unlock()
	return nil
}

// Paths returns the written paths, sorted.
func (s *RecordingStore) Paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	paths := append([]string(nil), s.paths...)
	sort.Strings(paths)
	return paths
}

func (s *RecordingStore) Bytes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bytes
}
