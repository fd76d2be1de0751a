package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"

	"github.com/scanward/scanward/internal/detectors"
	"github.com/scanward/scanward/internal/findings"
	"github.com/scanward/scanward/pkg/shared/config"
)

func newTestEngine() *Engine {
	return New(config.DefaultConfig(), hclog.NewNullLogger())
}

func ofType(list []findings.Finding, typ string) []findings.Finding {
	var out []findings.Finding
	for _, f := range list {
		if f.Type == typ {
			out = append(out, f)
		}
	}
	return out
}

func TestAnalyzeContentDeprecatedDeclarations(t *testing.T) {
	e := newTestEngine()
	found := e.AnalyzeContent(context.Background(), "src/app.js", "javascript", []byte("var x = 5;\nvar y = 10;"))

	deprecated := ofType(found, detectors.TypeDeprecatedDeclaration)
	if len(deprecated) != 2 {
		t.Fatalf("expected exactly 2 deprecated-declaration findings, got %d", len(deprecated))
	}
	assert.Equal(t, 1, deprecated[0].Line)
	assert.Equal(t, 2, deprecated[1].Line)
}

func TestAnalyzeContentCommentOnlyYieldsNothing(t *testing.T) {
	e := newTestEngine()
	found := e.AnalyzeContent(context.Background(), "src/app.js", "javascript", []byte("// var x = 5;"))
	assert.Empty(t, found)
}

func TestAnalyzeContentNestingDepth(t *testing.T) {
	e := newTestEngine()
	content := strings.Join([]string{
		"function outer() {",
		"  function a() {",
		"    function b() {",
		"      function c() {",
		"        function d() {",
		"          function deepest() {",
		"          }",
		"        }",
		"      }",
		"    }",
		"  }",
		"}",
	}, "\n")

	found := ofType(e.AnalyzeContent(context.Background(), "src/deep.js", "javascript", []byte(content)), "nesting-depth")
	if len(found) != 1 {
		t.Fatalf("expected exactly 1 nesting-depth finding, got %d", len(found))
	}
	assert.Equal(t, 6, found[0].Line)
}

func TestAnalyzeFileOversizedIncrementsRejections(t *testing.T) {
	e := newTestEngine()
	path := filepath.Join(t.TempDir(), "big.js")
	if err := os.WriteFile(path, make([]byte, 2*1024*1024), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	found := e.AnalyzeFile(context.Background(), path, "javascript")
	assert.Empty(t, found)
	assert.Equal(t, int64(1), e.Metrics().SecurityRejections)
	assert.Equal(t, int64(0), e.Metrics().FilesAnalyzed)
}

func TestAnalyzeContentIsIdempotent(t *testing.T) {
	e := newTestEngine()
	content := []byte("var a = 99;\nif (a == 99) { console.log(a); }\n")

	first := e.AnalyzeContent(context.Background(), "src/app.js", "javascript", content)
	second := e.AnalyzeContent(context.Background(), "src/app.js", "javascript", content)
	assert.Equal(t, first, second)
	assert.NotEmpty(t, first)
}

func TestAnalyzeContentCapsFindings(t *testing.T) {
	cfg := config.DefaultConfig()
	e := New(cfg, hclog.NewNullLogger())

	var sb strings.Builder
	for i := 0; i < cfg.Analysis.MaxFindingsPerFile+100; i++ {
		sb.WriteString("var x = 1;\n")
	}

	found := e.AnalyzeContent(context.Background(), "src/repeat.js", "javascript", []byte(sb.String()))
	assert.Len(t, found, cfg.Analysis.MaxFindingsPerFile)
}

func TestAnalyzeContentOrderedByPosition(t *testing.T) {
	e := newTestEngine()
	content := []byte("if (a == b) { console.log(1234); }\nvar x = 1;")
	found := e.AnalyzeContent(context.Background(), "src/app.js", "javascript", content)

	for i := 1; i < len(found); i++ {
		prev, cur := found[i-1], found[i]
		if prev.Line > cur.Line || (prev.Line == cur.Line && prev.Column > cur.Column) {
			t.Fatalf("findings out of order at %d: %+v before %+v", i, prev, cur)
		}
	}
}

func TestAnalyzeContentTimeout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analysis.Timeout = time.Nanosecond
	e := New(cfg, hclog.NewNullLogger())

	found := e.AnalyzeContent(context.Background(), "src/app.js", "javascript", []byte("var x = 1;"))
	assert.Empty(t, found)
	assert.Equal(t, int64(1), e.Metrics().Timeouts)
}

func TestMetricsLifecycle(t *testing.T) {
	e := newTestEngine()

	e.AnalyzeContent(context.Background(), "a.js", "javascript", []byte("var x = 1;"))
	e.AnalyzeContent(context.Background(), "b.js", "javascript", []byte("const y = 2;"))

	snap := e.Metrics()
	assert.Equal(t, int64(2), snap.FilesAnalyzed)
	assert.GreaterOrEqual(t, snap.TotalFindings, int64(1))
	assert.NotEmpty(t, snap.RunID)

	e.ResetMetrics()
	snap = e.Metrics()
	assert.Equal(t, int64(0), snap.FilesAnalyzed)
	assert.Equal(t, int64(0), snap.TotalFindings)
}

func TestCheckFileReportsWideUnit(t *testing.T) {
	e := newTestEngine()
	path := filepath.Join(t.TempDir(), "wide.js")
	content := "function everything(a, b, c, d, e, f, g, h) {\n  return a;\n}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	violations := e.CheckFile(context.Background(), path, "javascript")
	var isp []findings.Violation
	for _, v := range violations {
		if v.Principle == "interface-segregation" {
			isp = append(isp, v)
		}
	}
	if len(isp) != 1 {
		t.Fatalf("expected 1 interface-segregation violation, got %d", len(isp))
	}
	assert.Equal(t, "everything", isp[0].UnitName)
	assert.Equal(t, 8, isp[0].Metrics.ParameterCount)
}

func TestCheckFileTimeout(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Analysis.Timeout = time.Nanosecond
	e := New(cfg, hclog.NewNullLogger())

	path := filepath.Join(t.TempDir(), "slow.js")
	if err := os.WriteFile(path, []byte("function f(a) {\n  return a;\n}\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	violations := e.CheckFile(context.Background(), path, "javascript")
	assert.Empty(t, violations)
	assert.Equal(t, int64(1), e.Metrics().Timeouts)
}

func TestAnalyzeProjectSkipsEscapingSymlink(t *testing.T) {
	outside := t.TempDir()
	root := t.TempDir()

	godFile := "import axios from \"axios\";\nimport pg from \"pg-sql\";\n"
	for i := 0; i < 12; i++ {
		godFile += fmt.Sprintf("function f%d(a) {\n  return a;\n}\n", i)
	}
	if err := os.WriteFile(filepath.Join(outside, "escaped.js"), []byte(godFile), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if err := os.Symlink(filepath.Join(outside, "escaped.js"), filepath.Join(root, "linked.js")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "god.js"), []byte(godFile), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	e := newTestEngine()
	violations := e.AnalyzeProject(context.Background(), root, "javascript")

	assert.NotEmpty(t, violations)
	for _, v := range violations {
		assert.NotContains(t, v.File, "linked.js", "entries resolving outside the root must be skipped")
		assert.Contains(t, v.File, "god.js")
	}
}

func TestAnalyzeProjectWalksTree(t *testing.T) {
	root := t.TempDir()
	write := func(rel, content string) {
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("write: %v", err)
		}
	}

	godFile := "import axios from \"axios\";\nimport pg from \"pg-sql\";\n"
	for i := 0; i < 12; i++ {
		godFile += fmt.Sprintf("function f%d(a) {\n  return a;\n}\n", i)
	}
	write("src/god.js", godFile)
	write("src/ok.js", "const one = (a) => {\n  return a;\n};\n")
	write("node_modules/dep/index.js", godFile)
	write("README.md", "not source")

	e := newTestEngine()
	violations := e.AnalyzeProject(context.Background(), root, "javascript")

	assert.NotEmpty(t, violations)
	for _, v := range violations {
		assert.NotContains(t, v.File, "node_modules", "dependency trees must be skipped")
		assert.Contains(t, v.File, "god.js")
	}
}

func TestAnalyzeProjectMissingRoot(t *testing.T) {
	e := newTestEngine()
	violations := e.AnalyzeProject(context.Background(), filepath.Join(t.TempDir(), "missing"), "javascript")
	assert.Empty(t, violations)
}

func TestDetectorPanicIsContained(t *testing.T) {
	e := newTestEngine()
	// contained must convert a panic into an empty stage result.
	result := e.contained("test stage", func() []findings.Finding {
		panic("boom")
	})
	assert.Nil(t, result)
}
