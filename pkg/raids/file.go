package raids

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/yurikomh/portfolio-api/pkg/utils"
)

// FileStorage keeps the raid log in a single JSON file. All raids are held
// in memory and the file is rewritten atomically on every mutation; the log
// is small (one entry per play session), so this stays cheap.
type FileStorage struct {
	path  string
	raids map[string]*Raid
	mu    sync.RWMutex
}

// NewFileStorage creates or loads a file-backed raid log.
func NewFileStorage(path string) (*FileStorage, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	fs := &FileStorage{
		path:  path,
		raids: make(map[string]*Raid),
	}

	var existing []*Raid
	if err := utils.ReadJSONFile(path, &existing); err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to load raid log from %s: %w", path, err)
		}
	}
	for _, raid := range existing {
		fs.raids[raid.ID] = raid
	}

	return fs, nil
}

// Save stores a raid and rewrites the log file.
func (f *FileStorage) Save(raid *Raid) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if raid.ID == "" {
		return fmt.Errorf("raid ID cannot be empty")
	}

	f.raids[raid.ID] = raid
	return f.flush()
}

// List returns all raids, newest first.
func (f *FileStorage) List() ([]*Raid, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return f.sorted(), nil
}

// Delete removes a raid and rewrites the log file.
func (f *FileStorage) Delete(raidID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.raids[raidID]; !exists {
		return ErrRaidNotFound
	}

	delete(f.raids, raidID)
	return f.flush()
}

// Close is a no-op; every mutation is flushed synchronously.
func (f *FileStorage) Close() error {
	return nil
}

// flush rewrites the log file. Caller holds f.mu.
func (f *FileStorage) flush() error {
	return utils.WriteJSONFile(f.path, f.sorted())
}

// sorted returns raids newest first. Caller holds at least a read lock.
func (f *FileStorage) sorted() []*Raid {
	raids := make([]*Raid, 0, len(f.raids))
	for _, raid := range f.raids {
		raids = append(raids, raid)
	}

	sort.Slice(raids, func(i, j int) bool {
		return raids[i].Date.After(raids[j].Date)
	})

	return raids
}
