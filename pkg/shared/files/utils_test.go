package files

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadFileCapped(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name       string
		content    string
		limit      int
		wantOver   bool
		wantLength int
	}{
		{
			name:       "Content under the limit",
			content:    "hello",
			limit:      100,
			wantOver:   false,
			wantLength: 5,
		},
		{
			name:       "Content exactly at the limit",
			content:    strings.Repeat("a", 64),
			limit:      64,
			wantOver:   false,
			wantLength: 64,
		},
		{
			name:     "Content one byte over the limit",
			content:  strings.Repeat("a", 65),
			limit:    64,
			wantOver: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(tmpDir, strings.ReplaceAll(tt.name, " ", "_"))
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			data, over, err := ReadFileCapped(path, tt.limit)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if over != tt.wantOver {
				t.Errorf("expected over=%v, got %v", tt.wantOver, over)
			}
			if !tt.wantOver && len(data) != tt.wantLength {
				t.Errorf("expected %d bytes, got %d", tt.wantLength, len(data))
			}
		})
	}
}

func TestReadFileCappedMissingFile(t *testing.T) {
	if _, _, err := ReadFileCapped(filepath.Join(t.TempDir(), "missing.js"), 100); err == nil {
		t.Fatal("expected an error for a missing file")
	}
}

func TestEnsureWithinRoot(t *testing.T) {
	tmpDir := t.TempDir()

	tests := []struct {
		name    string
		root    string
		target  string
		wantErr bool
	}{
		{
			name:   "Target inside root",
			root:   tmpDir,
			target: filepath.Join(tmpDir, "src", "main.js"),
		},
		{
			name:    "Target escapes root via parent segments",
			root:    tmpDir,
			target:  filepath.Join(tmpDir, "..", "outside.js"),
			wantErr: true,
		},
		{
			name:   "Empty root returns cleaned target",
			root:   "",
			target: "some/./path.js",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := EnsureWithinRoot(tt.root, tt.target)
			if tt.wantErr && err == nil {
				t.Fatal("expected an error, got none")
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}
