// Package files discovers input datasets on disk.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// datasetExtensions are the input formats the loader understands.
var datasetExtensions = map[string]bool{
	".xlsx": true,
	".xlsm": true,
	".csv":  true,
}

// DatasetInfo describes one discovered input dataset.
type DatasetInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Discovery finds datasets under a base directory.
type Discovery struct {
	basePath string
}

// NewDiscovery creates a new dataset discovery instance.
func NewDiscovery(basePath string) *Discovery {
	return &Discovery{basePath: basePath}
}

// FindDatasets lists the loadable datasets in a directory, newest first.
func (d *Discovery) FindDatasets(dir string) ([]DatasetInfo, error) {
	fullPath := dir
	if !filepath.IsAbs(dir) {
		fullPath = filepath.Join(d.basePath, dir)
	}

	entries, err := os.ReadDir(fullPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", fullPath, err)
	}

	var datasets []DatasetInfo
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, "~$") {
			// Excel lock files
			continue
		}
		if !datasetExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		datasets = append(datasets, DatasetInfo{
			Path:    filepath.Join(fullPath, name),
			Name:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(datasets, func(i, j int) bool {
		return datasets[i].ModTime.After(datasets[j].ModTime)
	})

	return datasets, nil
}

// Latest returns the most recently modified dataset in a directory.
func (d *Discovery) Latest(dir string) (DatasetInfo, error) {
	datasets, err := d.FindDatasets(dir)
	if err != nil {
		return DatasetInfo{}, err
	}
	if len(datasets) == 0 {
		return DatasetInfo{}, fmt.Errorf("no datasets found in %s", dir)
	}
	return datasets[0], nil
}
