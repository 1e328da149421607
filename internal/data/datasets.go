package data

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Dataset describes one CSV input series available on disk.
type Dataset struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	SizeByte int64     `json:"size_bytes"`
	Modified time.Time `json:"modified"`
}

// ListDatasets returns the CSV datasets in dir, sorted by the directory
// listing order. A missing directory yields an empty list, not an error.
func ListDatasets(dir string) ([]Dataset, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []Dataset{}, nil
		}
		return nil, fmt.Errorf("read dataset dir: %w", err)
	}

	out := make([]Dataset, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, Dataset{
			Name:     strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			Path:     filepath.Join(dir, e.Name()),
			SizeByte: info.Size(),
			Modified: info.ModTime(),
		})
	}
	return out, nil
}

// ResolveDataset maps a dataset name to its CSV path under dir, rejecting
// names that escape the directory.
func ResolveDataset(dir, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("dataset name is required")
	}
	if strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", fmt.Errorf("invalid dataset name %q", name)
	}
	path := filepath.Join(dir, name+".csv")
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("dataset %q not found", name)
	}
	return path, nil
}
