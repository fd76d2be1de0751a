package guard

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hashicorp/go-hclog"

	"github.com/scanward/scanward/pkg/shared/config"
)

func newTestGuard(onReject func(string)) *Guard {
	return New(config.DefaultAnalysis(), hclog.NewNullLogger(), onReject)
}

func TestValidatePathRejections(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantReason string
	}{
		{
			name:       "Empty path",
			path:       "",
			wantReason: ReasonEmptyPath,
		},
		{
			name:       "Parent traversal segments",
			path:       "../../etc/passwd",
			wantReason: ReasonPathTraversal,
		},
		{
			name:       "Embedded null byte",
			path:       "src/app\x00.js",
			wantReason: ReasonNullByte,
		},
		{
			name:       "Path over the length ceiling",
			path:       strings.Repeat("a", 501),
			wantReason: ReasonPathTooLong,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGuard(nil)
			ctx, rej := g.Validate(tt.path, "javascript", []byte("var x = 1;"))
			if ctx != nil {
				t.Fatal("expected no context for rejected path")
			}
			if rej == nil || rej.Reason != tt.wantReason {
				t.Fatalf("expected reason %q, got %+v", tt.wantReason, rej)
			}
		})
	}
}

func TestValidateSizeCeilingBoundary(t *testing.T) {
	limits := config.DefaultAnalysis()

	t.Run("Exactly at the ceiling is accepted", func(t *testing.T) {
		g := newTestGuard(nil)
		content := []byte(strings.Repeat("a", limits.MaxFileSizeBytes))
		ctx, rej := g.Validate("src/big.js", "javascript", content)
		if rej != nil {
			t.Fatalf("unexpected rejection: %+v", rej)
		}
		if ctx.ContentLength != limits.MaxFileSizeBytes {
			t.Errorf("expected full content retained, got %d bytes", ctx.ContentLength)
		}
	})

	t.Run("One byte over is rejected", func(t *testing.T) {
		var rejections int
		g := newTestGuard(func(string) { rejections++ })
		content := []byte(strings.Repeat("a", limits.MaxFileSizeBytes+1))
		_, rej := g.Validate("src/big.js", "javascript", content)
		if rej == nil || rej.Reason != ReasonTooLarge {
			t.Fatalf("expected size-ceiling rejection, got %+v", rej)
		}
		if rejections != 1 {
			t.Errorf("expected exactly 1 rejection callback, got %d", rejections)
		}
	})
}

func TestValidateOversizedFileOnDisk(t *testing.T) {
	limits := config.DefaultAnalysis()
	path := filepath.Join(t.TempDir(), "huge.js")
	if err := os.WriteFile(path, make([]byte, 2*1024*1024), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var rejections int
	g := New(limits, hclog.NewNullLogger(), func(string) { rejections++ })
	_, rej := g.Validate(path, "javascript", nil)
	if rej == nil || rej.Reason != ReasonTooLarge {
		t.Fatalf("expected size-ceiling rejection for a 2 MB file, got %+v", rej)
	}
	if rejections != 1 {
		t.Errorf("expected the security-rejection counter bumped exactly once, got %d", rejections)
	}
}

func TestValidateUnsafeContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"Embedded script tag", `const html = "<script>alert(1)</script>";`},
		{"Dynamic evaluation", `eval(userInput);`},
		{"Function constructor", `const f = new Function("return 1");`},
		{"String-based timer callback", `setTimeout("doEvil()", 100);`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGuard(nil)
			_, rej := g.Validate("src/app.js", "javascript", []byte(tt.content))
			if rej == nil || rej.Reason != ReasonUnsafeContent {
				t.Fatalf("expected unsafe-content rejection, got %+v", rej)
			}
		})
	}
}

func TestValidateAcceptsCleanContent(t *testing.T) {
	g := newTestGuard(func(string) { t.Fatal("rejection callback must not fire for clean input") })
	ctx, rej := g.Validate("src/app.js", "", []byte("function add(a, b) { return a + b; }"))
	if rej != nil {
		t.Fatalf("unexpected rejection: %+v", rej)
	}
	if !ctx.Safe {
		t.Error("expected context marked safe")
	}
	if ctx.Language != "javascript" {
		t.Errorf("expected language detected from extension, got %q", ctx.Language)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		path     string
		declared string
		want     string
	}{
		{"a.ts", "", "typescript"},
		{"a.jsx", "", "javascript"},
		{"a.txt", "javascript", "javascript"},
		{"a.py", "python", "python"},
		{"a.unknown", "", ""},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.path, tt.declared); got != tt.want {
			t.Errorf("DetectLanguage(%q, %q) = %q, want %q", tt.path, tt.declared, got, tt.want)
		}
	}
}
