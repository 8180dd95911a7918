package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

func newTempStore(t *testing.T) *FileStore {
	t.Helper()
	store, err := NewFileStore(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	return store
}

func writeConfigFile(t *testing.T, path string, sections map[string]map[string]interface{}) {
	t.Helper()
	raw, err := json.Marshal(fileFormat{Version: storeVersion, Sections: sections})
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(path, raw, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func TestNewFileStoreStartsClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	if store.Path() != path {
		t.Errorf("Path() = %s, want %s", store.Path(), path)
	}
	if store.IsModified() {
		t.Error("fresh store should not be modified")
	}

	all, _ := store.GetAll()
	if len(all) != 0 {
		t.Errorf("fresh store should be empty, got %d sections", len(all))
	}
}

func TestNewFileStoreDefaultPath(t *testing.T) {
	store, err := NewFileStore("")
	if err != nil {
		t.Fatalf("NewFileStore with empty path failed: %v", err)
	}

	home, _ := os.UserHomeDir()
	want := filepath.Join(home, ".voyager", "config.json")
	if store.Path() != want {
		t.Errorf("Path() = %s, want %s", store.Path(), want)
	}
}

func TestNewFileStoreLoadsExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	writeConfigFile(t, path, map[string]map[string]interface{}{
		"browser": {"headless": true},
		"extra":   {"note": "kept"},
	})

	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}

	browser, err := store.GetSection("browser")
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if browser["headless"] != true {
		t.Errorf("headless = %v, want true", browser["headless"])
	}
	extra, _ := store.GetSection("extra")
	if extra["note"] != "kept" {
		t.Errorf("note = %v, want kept", extra["note"])
	}
}

func TestNewFileStoreRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatalf("write corrupt file: %v", err)
	}

	if _, err := NewFileStore(path); err == nil {
		t.Error("NewFileStore should fail on a corrupt file")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	store, _ := NewFileStore(path)

	if err := store.SetSection("browser", map[string]interface{}{
		"max_sessions": 5,
		"headless":     false,
	}); err != nil {
		t.Fatalf("SetSection failed: %v", err)
	}
	if !store.IsModified() {
		t.Error("store should be modified after SetSection")
	}
	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if store.IsModified() {
		t.Error("store should not be modified after Save")
	}

	// Reload through a second store and compare.
	reloaded, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("reload failed: %v", err)
	}
	browser, _ := reloaded.GetSection("browser")
	if browser["max_sessions"] != float64(5) {
		t.Errorf("max_sessions = %v, want 5", browser["max_sessions"])
	}
	if browser["headless"] != false {
		t.Errorf("headless = %v, want false", browser["headless"])
	}

	// The raw file carries the versioned envelope.
	raw, _ := os.ReadFile(path)
	var f fileFormat
	if err := json.Unmarshal(raw, &f); err != nil {
		t.Fatalf("saved file is not valid JSON: %v", err)
	}
	if f.Version != storeVersion {
		t.Errorf("version = %s, want %s", f.Version, storeVersion)
	}
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "config.json")
	store, err := NewFileStore(path)
	if err != nil {
		t.Fatalf("NewFileStore failed: %v", err)
	}
	store.SetSection("browser", map[string]interface{}{"headless": true})

	if err := store.Save(); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("saved file missing: %v", err)
	}
}

func TestGetSectionUnknownIsEmpty(t *testing.T) {
	store := newTempStore(t)

	section, err := store.GetSection("missing")
	if err != nil {
		t.Fatalf("GetSection failed: %v", err)
	}
	if len(section) != 0 {
		t.Errorf("unknown section should be empty, got %v", section)
	}
}

func TestSectionDataIsCopied(t *testing.T) {
	store := newTempStore(t)

	in := map[string]interface{}{"key": "original"}
	store.SetSection("browser", in)
	in["key"] = "mutated-input"

	out, _ := store.GetSection("browser")
	if out["key"] != "original" {
		t.Errorf("input mutation leaked into store: %v", out["key"])
	}

	out["key"] = "mutated-output"
	again, _ := store.GetSection("browser")
	if again["key"] != "original" {
		t.Errorf("output mutation leaked into store: %v", again["key"])
	}
}

func TestGetAllAndSetAll(t *testing.T) {
	store := newTempStore(t)

	in := map[string]map[string]interface{}{
		"browser": {"headless": true},
		"other":   {"n": 3},
	}
	if err := store.SetAll(in); err != nil {
		t.Fatalf("SetAll failed: %v", err)
	}
	if !store.IsModified() {
		t.Error("store should be modified after SetAll")
	}

	all, err := store.GetAll()
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(all))
	}
	if all["browser"]["headless"] != true {
		t.Error("browser section not round-tripped")
	}

	// Both directions are deep copies.
	in["other"]["n"] = 99
	all["browser"]["headless"] = false
	fresh, _ := store.GetAll()
	if fresh["other"]["n"] != 3 || fresh["browser"]["headless"] != true {
		t.Error("SetAll/GetAll aliased internal data")
	}
}
