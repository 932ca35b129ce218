package config

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/karto-app/karto/pkg/sheet"
	"github.com/karto-app/karto/pkg/theme"
)

func writeConfig(t *testing.T, dir, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveDefaults(t *testing.T) {
	dir := t.TempDir()
	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Path != "" {
		t.Errorf("Path = %q, want empty without a file", r.Path)
	}
	if r.Viewport.Width != DefaultViewportWidth || r.Viewport.Height != DefaultViewportHeight {
		t.Errorf("Viewport = %v", r.Viewport)
	}
	if r.SheetHeight != sheet.DefaultHeight || !r.BackdropPress || r.BlurIntensity != 35 || r.Tint != theme.BlurTintDark {
		t.Errorf("sheet defaults = %+v", r)
	}
	if r.LogLevel != log.InfoLevel || r.StoragePath != "" {
		t.Errorf("LogLevel = %v, StoragePath = %q", r.LogLevel, r.StoragePath)
	}
}

func TestResolveFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
version: 1.2.0
viewport:
  width: 400
  height: 900
  insets:
    top: 20
sheet:
  height: 500
  cover_percentage: 0.5
  backdrop_press: false
  blur_intensity: 0
  tint: Light
storage:
  path: cache/karto.db
log:
  level: debug
  file: karto.log
`)
	r, err := Resolve(dir)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if r.Path != filepath.Join(dir, FileName) {
		t.Errorf("Path = %q", r.Path)
	}
	if r.Viewport.Width != 400 || r.Viewport.Height != 900 || r.Insets.Top != 20 || r.Insets.Bottom != 0 {
		t.Errorf("viewport = %v insets = %v", r.Viewport, r.Insets)
	}
	if r.SheetHeight != 500 || r.CoverPercentage != 0.5 || r.BackdropPress || r.BlurIntensity != 0 || r.Tint != theme.BlurTintLight {
		t.Errorf("sheet = %+v", r)
	}
	if r.StoragePath != filepath.Join(dir, "cache", "karto.db") {
		t.Errorf("StoragePath = %q", r.StoragePath)
	}
	if r.LogLevel != log.DebugLevel || r.LogFile != filepath.Join(dir, "karto.log") {
		t.Errorf("log = %v %q", r.LogLevel, r.LogFile)
	}
	if got := len(r.SheetOptions()); got != 5 {
		t.Errorf("len(SheetOptions()) = %d, want 5", got)
	}
	if m := r.Metrics(); m.Viewport != r.Viewport {
		t.Errorf("Metrics().Viewport = %v", m.Viewport)
	}
}

func TestResolveErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"bad yaml", "sheet: [", "failed to parse"},
		{"major version", "version: 2.0.0", "unsupported config version"},
		{"not semver", "version: banana", "not a semantic version"},
		{"negative viewport", "viewport: {width: -1}", "viewport size"},
		{"cover", "sheet: {cover_percentage: 1.5}", "cover_percentage"},
		{"tint", "sheet: {tint: purple}", "tint"},
		{"blur", "sheet: {blur_intensity: 101}", "blur_intensity"},
		{"level", "log: {level: loud}", "log level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.body)
			_, err := Resolve(dir)
			if err == nil {
				t.Fatal("Resolve succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestUnsupportedVersionIs(t *testing.T) {
	cfg := &Config{Version: "v3"}
	if _, err := cfg.Resolve(""); !errors.Is(err, ErrUnsupportedVersion) {
		t.Errorf("error = %v, want ErrUnsupportedVersion", err)
	}
}

func TestResolveFileExplicit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "other.yaml")
	if err := os.WriteFile(path, []byte("storage: {path: kv.db}\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := ResolveFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if r.Path != path || r.StoragePath != filepath.Join(dir, "kv.db") {
		t.Errorf("Path = %q StoragePath = %q", r.Path, r.StoragePath)
	}
	if _, err := ResolveFile(filepath.Join(dir, "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file error = %v, want ErrNotExist", err)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	press := false
	cfg := &Config{Version: "v1.0.0", Sheet: SheetConfig{Height: 300, BackdropPress: &press}}
	data, err := cfg.Marshal()
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "backdrop_press: false") {
		t.Errorf("Marshal() = %s", data)
	}
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "sheet: {height: 300}\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	got := make(chan *Resolved, 8)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, dir, log.New(io.Discard), func(r *Resolved, err error) {
			if err == nil {
				got <- r
			}
		})
	}()

	deadline := time.After(5 * time.Second)
	tick := time.NewTicker(50 * time.Millisecond)
	defer tick.Stop()
	for {
		select {
		case r := <-got:
			if r.SheetHeight == 360 {
				cancel()
				if err := <-done; err != nil {
					t.Errorf("Watch returned %v", err)
				}
				return
			}
		case <-tick.C:
			// Rewrite until the watcher, which starts asynchronously, sees it.
			writeConfig(t, dir, "sheet: {height: 360}\n")
		case <-deadline:
			t.Fatal("no reload within 5s")
		}
	}
}
