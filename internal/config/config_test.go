package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brogergvhs/anyweb/internal/providers/anyweb"
	"github.com/google/go-cmp/cmp"
)

func isolate(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	t.Setenv("APPDATA", "")
	t.Setenv("XDG_CONFIG_HOME", dir)

	return filepath.Join(dir, "anyweb")
}

func TestLoadFileKeepsDefaultsForMissingKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	yml := `output: /tmp/manga
index:
  depth: 5
images:
  check_size: true
  exclude_url_keywords: "logo"
`
	if err := os.WriteFile(path, []byte(yml), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	want := DefaultConfig()
	want.Output = "/tmp/manga"
	want.Index.Depth = 5
	want.Images.CheckSize = true
	want.Images.ExcludeURLKeywords = "logo"

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadFile mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadFileCanTurnDefaultsOff(t *testing.T) {
	path := filepath.Join(t.TempDir(), "p.yaml")
	if err := os.WriteFile(path, []byte("images:\n  check_selector: false\n  check_url_keywords: false\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got.Images.CheckSelector || got.Images.CheckURLKeywords {
		t.Errorf("explicit false was not kept: %+v", got.Images)
	}
}

func TestScraperOptionsMatchDefaults(t *testing.T) {
	got := DefaultConfig().ScraperOptions()
	if diff := cmp.Diff(anyweb.DefaultOptions(), got); diff != "" {
		t.Errorf("ScraperOptions mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("defaults invalid: %v", err)
	}

	c := DefaultConfig()
	c.Index.Depth = 0
	c.Index.ExcludeSelector = "div["
	err := c.Validate()
	if !errors.Is(err, anyweb.ErrInvalidIndexDepth) || !errors.Is(err, anyweb.ErrInvalidSelector) {
		t.Fatalf("err = %v, want both depth and selector errors", err)
	}

	c = DefaultConfig()
	c.Images.ExcludeSelector = "div["
	c.Images.CheckSelector = false
	if err := c.Validate(); err != nil {
		t.Errorf("unused image selector should not be validated: %v", err)
	}
}

func TestLoadMergedWithoutProfile(t *testing.T) {
	isolate(t)

	cfg, used, err := LoadMerged(Options{IndexDepth: 2, Output: "out"})
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(used, "default config") {
		t.Errorf("used = %q", used)
	}
	if cfg.Index.Depth != 2 || cfg.Output != "out" {
		t.Errorf("flags not merged: %+v", cfg)
	}
	if cfg.Index.ExcludeSelector != anyweb.DefaultExcludeSelector {
		t.Errorf("exclude selector = %q", cfg.Index.ExcludeSelector)
	}
}

func TestProfileLifecycle(t *testing.T) {
	root := isolate(t)

	path, err := InitDefaultConfig()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join(root, "configs", "Default.yaml") {
		t.Errorf("path = %q", path)
	}

	if _, err := InitDefaultConfig(); !errors.Is(err, os.ErrExist) {
		t.Errorf("second init err = %v, want os.ErrExist", err)
	}

	if _, err := CreateEmptyConfig("work"); err != nil {
		t.Fatal(err)
	}
	if _, err := CreateEmptyConfig("work"); err == nil {
		t.Error("duplicate label accepted")
	}
	if _, err := CreateEmptyConfig("../escape"); !errors.Is(err, ErrInvalidLabel) {
		t.Errorf("err = %v, want ErrInvalidLabel", err)
	}

	if err := SwitchConfig("work"); err != nil {
		t.Fatal(err)
	}
	if err := RenameConfig("work", "job"); err != nil {
		t.Fatal(err)
	}
	if label, _ := CurrentLabel(); label != "job" {
		t.Errorf("active label after rename = %q", label)
	}

	list, err := ListConfigs()
	if err != nil {
		t.Fatal(err)
	}
	want := []ConfigInfo{
		{Label: "Default", Path: filepath.Join(root, "configs", "Default.yaml")},
		{Label: "job", Path: filepath.Join(root, "configs", "job.yaml"), Active: true},
	}
	if diff := cmp.Diff(want, list); diff != "" {
		t.Errorf("ListConfigs mismatch (-want +got):\n%s", diff)
	}

	if err := RemoveConfig("Default"); err == nil {
		t.Error("Default profile removed")
	}
	if err := RemoveConfig("job"); err != nil {
		t.Fatal(err)
	}
	if label, _ := CurrentLabel(); label != "Default" {
		t.Errorf("active label after remove = %q", label)
	}
}

func TestAddConfigImportsYAML(t *testing.T) {
	isolate(t)

	src := filepath.Join(t.TempDir(), "src.yaml")
	if err := os.WriteFile(src, []byte("chapter_workers: 7\n"), 0644); err != nil {
		t.Fatal(err)
	}

	path, err := AddConfig("imported", src)
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.ChapterWorkers != 7 || cfg.Index.Depth != anyweb.DefaultIndexDepth {
		t.Errorf("imported profile = %+v", cfg)
	}

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(bad, []byte("index: [1, 2"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := AddConfig("bad", bad); err == nil {
		t.Error("malformed YAML accepted")
	}
}
