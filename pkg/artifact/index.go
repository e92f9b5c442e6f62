package artifact

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Run is one invocation of the jobs against an output directory.
type Run struct {
	ID        string    `json:"id"`
	Time      time.Time `json:"time"`
	Jobs      []string  `json:"jobs"`
	Artifacts []string  `json:"artifacts,omitempty"`
	Error     string    `json:"error,omitempty"`
}

func NewRun(jobs []string) Run {
	return Run{
		ID:   uuid.NewString(),
		Time: time.Now(),
		Jobs: jobs,
	}
}

// RunIndex lists the runs that wrote to an output directory.
type RunIndex struct {
	Runs []Run `json:"runs,omitempty"`
}

func getIndexPath(outputDirectory string) string {
	return filepath.Join(outputDirectory, "index.json")
}

func LoadIndex(outputDirectory string) (*RunIndex, error) {
	indexFile := getIndexPath(outputDirectory)
	if _, err := os.Stat(indexFile); os.IsNotExist(err) {
		return &RunIndex{}, nil
	}

	indexLock := flock.New(indexFile)
	if err := indexLock.Lock(); err != nil {
		return nil, errors.Wrap(err, "index file lock error")
	}
	defer func() {
		if err := indexLock.Unlock(); err != nil {
			log.WithError(err).Errorf("index file unlock error: %s", err)
		}
	}()

	return loadIndexLocked(indexFile)
}

// AddIndexRun appends the run to the index of the output directory. Concurrent
// invocations are serialized with a file lock.
func AddIndexRun(outputDirectory string, run Run) error {
	if err := os.MkdirAll(outputDirectory, 0755); err != nil {
		return err
	}

	indexFile := getIndexPath(outputDirectory)
	indexLock := flock.New(indexFile)
	if err := indexLock.Lock(); err != nil {
		log.WithError(err).Errorf("index file lock error: %s", err)
		return err
	}
	defer func() {
		if err := indexLock.Unlock(); err != nil {
			log.WithError(err).Errorf("index file unlock error: %s", err)
		}
	}()

	index, err := loadIndexLocked(indexFile)
	if err != nil {
		return err
	}

	index.Runs = append(index.Runs, run)
	return writeIndexLocked(indexFile, index)
}

// loadIndexLocked must be protected by the file lock
func loadIndexLocked(indexFile string) (*RunIndex, error) {
	var index RunIndex
	data, err := os.ReadFile(indexFile)
	if err != nil {
		return nil, err
	}

	if len(data) != 0 {
		if err := json.Unmarshal(data, &index); err != nil {
			return nil, errors.Wrapf(err, "invalid index file %s", indexFile)
		}
	}
	return &index, nil
}

// writeIndexLocked must be protected by the file lock
func writeIndexLocked(indexFile string, index *RunIndex) error {
	data, err := json.MarshalIndent(index, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(indexFile, data, 0644)
}
