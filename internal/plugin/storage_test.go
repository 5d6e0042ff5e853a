package plugin

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestStoreSaveLoadDelete(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "plugins"))

	if err := s.Save(&Plugin{Name: "logger", URLs: []string{"ws://localhost:8081/ws"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Save(&Plugin{Name: "muted", Disabled: true, URLs: []string{"ws://localhost:9000"}}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	plugins, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	byName := map[string]*Plugin{}
	for _, p := range plugins {
		byName[p.Name] = p
	}
	if len(byName) != 2 {
		t.Fatalf("loaded %d plugins, want 2", len(byName))
	}
	if !reflect.DeepEqual(byName["logger"].URLs, []string{"ws://localhost:8081/ws"}) {
		t.Errorf("logger urls: %+v", byName["logger"].URLs)
	}
	if !byName["muted"].Disabled {
		t.Error("muted should be disabled")
	}

	if err := s.Delete("logger"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := s.Delete("logger"); err != nil {
		t.Errorf("Delete twice: %v", err)
	}
	plugins, err = s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(plugins) != 1 || plugins[0].Name != "muted" {
		t.Errorf("after delete: %+v", plugins)
	}
}

func TestStoreLoadSkipsBadFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "plugins")
	s := NewStore(dir)
	if err := s.Save(&Plugin{Name: "good", URLs: []string{"ws://localhost"}}); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "bad.json"), []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignore"), 0o644); err != nil {
		t.Fatal(err)
	}

	plugins, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(plugins) != 1 || plugins[0].Name != "good" {
		t.Errorf("got %+v, want only the good plugin", plugins)
	}
}

func TestStoreLoadCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "plugins")
	s := NewStore(dir)
	plugins, err := s.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(plugins) != 0 {
		t.Errorf("got %d plugins from fresh dir", len(plugins))
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("dir not created: %v", err)
	}
}

func TestStoreWatch(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "plugins"))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 8)
	if err := s.Watch(ctx, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	}); err != nil {
		t.Fatalf("Watch: %v", err)
	}

	if err := s.Save(&Plugin{Name: "hot", URLs: []string{"ws://localhost"}}); err != nil {
		t.Fatal(err)
	}
	select {
	case <-changed:
	case <-time.After(2 * time.Second):
		t.Fatal("no change notification after save")
	}
}
