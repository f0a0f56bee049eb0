package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	intImage "github.com/gogpu/tilefish/internal/image"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tilefish.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	c := Default()
	if c.Size != 256 || c.Debounce != 10*time.Millisecond || c.Format != "png" {
		t.Errorf("Default() = %+v", c)
	}
	if c.Serve.Listen != "127.0.0.1:8080" || c.Save.Prefix != "tilefish" || c.Save.Preview.Cols != 3 {
		t.Errorf("Default() nested = %+v %+v", c.Serve, c.Save)
	}
	if err := c.Validate(); err != nil {
		t.Errorf("Default().Validate() = %v", err)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
size: 128
debounce: 25ms
format: tiff
retries: 2
log_level: debug
serve:
  listen: ":9000"
save:
  dir: out
  prefix: fish
  preview:
    enabled: true
    scale: 2
`)
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if c.Size != 128 || c.Debounce != 25*time.Millisecond || c.Retries != 2 {
		t.Errorf("Load() = %+v", c)
	}
	if f, _ := c.ImageFormat(); f != intImage.FormatTIFF {
		t.Errorf("ImageFormat() = %v, want tiff", f)
	}
	if l, _ := c.Level(); l != slog.LevelDebug {
		t.Errorf("Level() = %v, want debug", l)
	}
	if c.Serve.Listen != ":9000" || c.Serve.ShutdownTimeout != 5*time.Second {
		t.Errorf("Serve = %+v", c.Serve)
	}
	p := c.Save.Preview
	if c.Save.Dir != "out" || c.Save.Prefix != "fish" || !p.Enabled || p.Scale != 2 || p.Cols != 3 {
		t.Errorf("Save = %+v", c.Save)
	}
}

func TestLoad_Debounce(t *testing.T) {
	tests := []struct {
		name string
		body string
		want time.Duration
	}{
		{"absent", "size: 64", 10 * time.Millisecond},
		{"explicit zero", "debounce: 0s", 0},
		{"set", "debounce: 40ms", 40 * time.Millisecond},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Load(writeConfig(t, tt.body))
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if c.Debounce != tt.want {
				t.Errorf("Debounce = %v, want %v", c.Debounce, tt.want)
			}
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		invalid bool
	}{
		{"bad yaml", "size: [", false},
		{"bad format", "format: jpeg", true},
		{"bad level", "log_level: loud", true},
		{"negative retries", "retries: -1", true},
		{"negative debounce", "debounce: -5ms", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil {
				t.Fatal("Load() error = nil")
			}
			if tt.invalid && !errors.Is(err, ErrInvalid) {
				t.Errorf("Load() error = %v, want ErrInvalid", err)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}
