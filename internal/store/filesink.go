package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileArchive stores runs as one JSON file each under <dir>/runs. It is the
// archive used when Postgres is not configured, keeping single-machine
// installs dependency free.
type FileArchive struct {
	dir string
}

func NewFileArchive(dataDir string) *FileArchive {
	return &FileArchive{dir: filepath.Join(dataDir, "runs")}
}

func (f *FileArchive) path(id string) string {
	return filepath.Join(f.dir, id+".json")
}

func (f *FileArchive) SaveRun(ctx context.Context, rec RunRecord) error {
	if err := os.MkdirAll(f.dir, 0o755); err != nil {
		return fmt.Errorf("creating runs dir: %w", err)
	}
	raw, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(f.path(rec.ID), raw, 0o644)
}

func (f *FileArchive) GetRun(ctx context.Context, id string) (RunRecord, error) {
	raw, err := os.ReadFile(f.path(id))
	if err != nil {
		if os.IsNotExist(err) {
			return RunRecord{}, ErrRunNotFound
		}
		return RunRecord{}, err
	}
	var rec RunRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return RunRecord{}, fmt.Errorf("parsing run %s: %w", id, err)
	}
	return rec, nil
}

func (f *FileArchive) ListRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}
	entries, err := os.ReadDir(f.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var out []RunRecord
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		rec, err := f.GetRun(ctx, strings.TrimSuffix(e.Name(), ".json"))
		if err != nil {
			continue
		}
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *FileArchive) Close() error { return nil }
