package suggest

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// DefaultMaxRecents is the history length used when none is configured.
const DefaultMaxRecents = 6

// Recents keeps the most recent searches, newest first, without
// case-insensitive duplicates. When path is set the list is persisted as YAML.
type Recents struct {
	mu    sync.Mutex
	items []string
	max   int
	path  string
}

type recentsFile struct {
	Recent []string `yaml:"recent"`
}

// NewRecents creates an in-memory history holding at most limit entries.
func NewRecents(limit int) *Recents {
	if limit <= 0 {
		limit = DefaultMaxRecents
	}
	return &Recents{max: limit}
}

// LoadRecents opens the history stored at path. A missing file starts empty.
func LoadRecents(path string, limit int) (*Recents, error) {
	r := NewRecents(limit)
	r.path = path
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return r, nil
		}
		return nil, err
	}
	var f recentsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse history %s: %w", path, err)
	}
	// oldest first so Add reproduces the stored order
	for i := len(f.Recent) - 1; i >= 0; i-- {
		r.add(f.Recent[i])
	}
	return r, nil
}

// Add records q as the newest search and persists the list if a path is set.
// Blank queries are ignored.
func (r *Recents) Add(q string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.add(q) {
		return nil
	}
	return r.save()
}

// List returns the searches newest first.
func (r *Recents) List() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.items...)
}

func (r *Recents) add(q string) bool {
	q = strings.TrimSpace(q)
	if q == "" {
		return false
	}
	items := make([]string, 0, len(r.items)+1)
	items = append(items, q)
	for _, it := range r.items {
		if strings.EqualFold(it, q) {
			continue
		}
		items = append(items, it)
	}
	if len(items) > r.max {
		items = items[:r.max]
	}
	r.items = items
	return true
}

func (r *Recents) save() error {
	if r.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(recentsFile{Recent: r.items})
	if err != nil {
		return err
	}
	return os.WriteFile(r.path, data, 0o644)
}
