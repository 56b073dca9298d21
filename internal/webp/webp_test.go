package webp_test

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/junyi/go-weekpub/internal/webp"
)

// fakeRunner records invocations and returns scripted results.
type fakeRunner struct {
	calls  [][]string
	stderr string
	err    error
}

func (r *fakeRunner) Run(name string, args ...string) (string, string, error) {
	call := append([]string{name}, args...)
	r.calls = append(r.calls, call)
	return "", r.stderr, r.err
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("fake image bytes"), 0o644); err != nil {
		t.Fatal(err)
	}
}

// ---------------------------------------------------------------------------
// TestEnsure - Conversion command shape and skip logic
// ---------------------------------------------------------------------------

func TestEnsure_InvokesEncoderWithFixedArgumentShape(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "cover.png")
	writeFile(t, src)

	runner := &fakeRunner{}
	conv := &webp.Converter{Runner: runner, Tool: "cwebp", Quality: 82, Effort: 6}

	out, err := conv.Ensure(src)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}

	wantOut := filepath.Join(dir, "cover.webp")
	if out != wantOut {
		t.Errorf("out = %q, want %q", out, wantOut)
	}

	if len(runner.calls) != 1 {
		t.Fatalf("encoder invoked %d times, want 1", len(runner.calls))
	}
	want := []string{"cwebp", "-q", "82", "-m", "6", "-mt", "-metadata", "none", src, "-o", wantOut}
	got := runner.calls[0]
	if strings.Join(got, " ") != strings.Join(want, " ") {
		t.Errorf("encoder args = %v, want %v", got, want)
	}
}

func TestEnsure_SkipsWhenOutputExists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "cover.jpg")
	out := filepath.Join(dir, "cover.webp")
	writeFile(t, src)
	writeFile(t, out)

	runner := &fakeRunner{}
	conv := &webp.Converter{Runner: runner, Tool: "cwebp", Quality: 82, Effort: 6}

	got, err := conv.Ensure(src)
	if err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	if got != out {
		t.Errorf("out = %q, want %q", got, out)
	}
	if len(runner.calls) != 0 {
		t.Errorf("encoder invoked %d times, want 0 (output exists)", len(runner.calls))
	}
}

func TestEnsure_QualityFlowsThrough(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "photo.jpeg")
	writeFile(t, src)

	runner := &fakeRunner{}
	conv := &webp.Converter{Runner: runner, Tool: "cwebp", Quality: 60, Effort: 4}

	if _, err := conv.Ensure(src); err != nil {
		t.Fatalf("Ensure() error = %v", err)
	}
	args := strings.Join(runner.calls[0], " ")
	if !strings.Contains(args, "-q 60") || !strings.Contains(args, "-m 4") {
		t.Errorf("quality/effort not passed through: %s", args)
	}
}

// ---------------------------------------------------------------------------
// TestEnsure - Failure classification
// ---------------------------------------------------------------------------

func TestEnsure_ToolNotFound(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "cover.png")
	writeFile(t, src)

	runner := &fakeRunner{err: &exec.Error{Name: "cwebp", Err: exec.ErrNotFound}}
	conv := &webp.Converter{Runner: runner, Tool: "cwebp", Quality: 82, Effort: 6}

	_, err := conv.Ensure(src)
	if !errors.Is(err, webp.ErrToolNotFound) {
		t.Errorf("Ensure() error = %v, want ErrToolNotFound", err)
	}
}

func TestEnsure_ToolFailed(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	src := filepath.Join(dir, "cover.png")
	writeFile(t, src)

	runner := &fakeRunner{stderr: "cannot open input file", err: errors.New("exit status 1")}
	conv := &webp.Converter{Runner: runner, Tool: "cwebp", Quality: 82, Effort: 6}

	_, err := conv.Ensure(src)
	if !errors.Is(err, webp.ErrToolFailed) {
		t.Fatalf("Ensure() error = %v, want ErrToolFailed", err)
	}
	if !strings.Contains(err.Error(), "cannot open input file") {
		t.Errorf("error does not carry encoder stderr: %v", err)
	}
}

// ---------------------------------------------------------------------------
// TestNewConverter - Defaults
// ---------------------------------------------------------------------------

func TestNewConverter_DefaultsToolName(t *testing.T) {
	t.Parallel()

	conv := webp.NewConverter("", webp.DefaultQuality, webp.DefaultEffort)
	if conv.Tool != "cwebp" {
		t.Errorf("Tool = %q, want cwebp", conv.Tool)
	}
	if conv.Quality != 82 || conv.Effort != 6 {
		t.Errorf("defaults = q%d m%d, want q82 m6", conv.Quality, conv.Effort)
	}
}
