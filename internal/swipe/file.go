package swipe

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

const (
	JobsFile    = "jobs.json"
	WorkersFile = "workers.json"
)

// FileSource serves snapshots stored on disk in the same format the upstream API returns.
type FileSource struct {
	dir    string
	logger *zap.Logger
}

// NewFileSource reads jobs.json and workers.json from dir on every call.
func NewFileSource(logger *zap.Logger, dir string) *FileSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FileSource{dir: strings.TrimSpace(dir), logger: logger}
}

func (f *FileSource) GetJobs(_ context.Context) (*Jobs, error) {
	items, err := f.readItems(JobsFile)
	if err != nil {
		return nil, fmt.Errorf("get jobs: %w", err)
	}
	return DecodeJobs(items)
}

func (f *FileSource) GetWorkers(_ context.Context) (*Workers, error) {
	items, err := f.readItems(WorkersFile)
	if err != nil {
		return nil, fmt.Errorf("get workers: %w", err)
	}
	return DecodeWorkers(items)
}

func (f *FileSource) readItems(name string) ([]any, error) {
	path := filepath.Join(f.dir, name)
	f.logger.Debug("reading snapshot", zap.String("path", path))

	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, err
	}

	if stat.Size() == 0 {
		return []any{}, nil
	}

	var items []any
	if err := json.NewDecoder(file).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return items, nil
}
