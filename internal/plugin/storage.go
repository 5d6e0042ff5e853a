// Package plugin manages plugin configuration on disk and the supervised
// WebSocket connection to each plugin process.
package plugin

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Plugin is one plugin's persisted configuration. Name is derived from the
// file stem and not stored in the file.
type Plugin struct {
	Name     string   `json:"-"`
	Disabled bool     `json:"disabled"`
	URLs     []string `json:"urls"`
}

// Store reads and writes plugin files under a directory, one <name>.json
// per plugin.
type Store struct {
	dir string
	log *slog.Logger
}

// NewStore returns a store rooted at dir. The directory is created on first
// write or load.
func NewStore(dir string) *Store {
	return &Store{dir: dir, log: slog.With("component", "plugin-store")}
}

func (s *Store) ensureDir() error {
	return os.MkdirAll(s.dir, 0o755)
}

// Load reads every plugin file. Unreadable or malformed files are logged
// and skipped.
func (s *Store) Load() ([]*Plugin, error) {
	if err := s.ensureDir(); err != nil {
		return nil, fmt.Errorf("plugin: create dir: %w", err)
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("plugin: read dir: %w", err)
	}
	var plugins []*Plugin
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		p, err := s.loadFile(name)
		if err != nil {
			s.log.Warn("skipping bad plugin file", "file", name, "error", err)
			continue
		}
		plugins = append(plugins, p)
	}
	return plugins, nil
}

func (s *Store) loadFile(filename string) (*Plugin, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, filename))
	if err != nil {
		return nil, err
	}
	p := &Plugin{}
	if err := json.Unmarshal(data, p); err != nil {
		return nil, err
	}
	p.Name = strings.TrimSuffix(filename, ".json")
	return p, nil
}

// Save writes one plugin file, replacing any previous version.
func (s *Store) Save(p *Plugin) error {
	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("plugin: create dir: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("plugin: marshal %s: %w", p.Name, err)
	}
	path := filepath.Join(s.dir, p.Name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("plugin: write %s: %w", path, err)
	}
	return nil
}

// Delete removes one plugin file. Deleting a missing plugin is not an error.
func (s *Store) Delete(name string) error {
	err := os.Remove(filepath.Join(s.dir, name+".json"))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("plugin: delete %s: %w", name, err)
	}
	return nil
}

// Watch invokes onChange whenever a plugin file is created, modified or
// removed, until ctx is canceled. Changes only affect bots created after
// the change; running bots keep their connection set.
func (s *Store) Watch(ctx context.Context, onChange func()) error {
	if err := s.ensureDir(); err != nil {
		return fmt.Errorf("plugin: create dir: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("plugin: watcher: %w", err)
	}
	if err := watcher.Add(s.dir); err != nil {
		watcher.Close()
		return fmt.Errorf("plugin: watch %s: %w", s.dir, err)
	}
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if strings.HasSuffix(ev.Name, ".json") {
					s.log.Debug("plugin dir changed", "file", ev.Name, "op", ev.Op.String())
					onChange()
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				s.log.Warn("plugin watcher error", "error", err)
			}
		}
	}()
	return nil
}
