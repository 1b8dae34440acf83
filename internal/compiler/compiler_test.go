package compiler

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/danmuck/bragi/internal/testutil/testlog"
)

type fakeRunner struct {
	stdout []byte
	stderr []byte
	code   int32
	err    error

	dir  string
	name string
	args []string
}

func (f *fakeRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, []byte, int32, error) {
	f.dir, f.name, f.args = dir, name, args
	return f.stdout, f.stderr, f.code, f.err
}

func TestArgs(t *testing.T) {
	got := Args(Request{
		Sources:      []string{"a.bragi", "b.bragi"},
		Output:       "out.hpp",
		Language:     "cpp",
		LanguageArgs: []string{"-l", "stdc++"},
	})
	want := []string{"-o", "out.hpp", "a.bragi", "b.bragi", "cpp", "-l", "stdc++"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestInvokeSuccess(t *testing.T) {
	testlog.Start(t)
	dir := t.TempDir()
	runner := &fakeRunner{}
	res, err := NewInvoker(runner).Invoke(context.Background(), Request{
		Sources:  []string{"fs.bragi"},
		Output:   filepath.Join("gen", "fs.go"),
		Language: "go",
		Dir:      dir,
	})
	if err != nil {
		t.Fatalf("invoke: %v", err)
	}
	if runner.name != DefaultCompiler || runner.dir != dir {
		t.Fatalf("unexpected run name=%q dir=%q", runner.name, runner.dir)
	}
	if res.Output != filepath.Join("gen", "fs.go") {
		t.Fatalf("unexpected output %q", res.Output)
	}
	if _, err := os.Stat(filepath.Join(dir, "gen")); err != nil {
		t.Fatalf("expected output dir to exist: %v", err)
	}
}

func TestInvokeFailureSurfacesOutputVerbatim(t *testing.T) {
	testlog.Start(t)
	runner := &fakeRunner{
		stdout: []byte("parsing fs.bragi"),
		stderr: []byte("fs.bragi:3: unexpected token"),
		code:   1,
		err:    errors.New("exit status 1"),
	}
	_, err := NewInvoker(runner).Invoke(context.Background(), Request{
		Compiler: "/opt/bragi",
		Sources:  []string{"fs.bragi"},
		Output:   filepath.Join(t.TempDir(), "fs.go"),
		Language: "go",
	})
	var cerr *Error
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *Error, got %v", err)
	}
	if cerr.ExitCode != 1 || cerr.Compiler != "/opt/bragi" {
		t.Fatalf("unexpected error fields: %+v", cerr)
	}
	want := "bragi compiler failed:\nparsing fs.bragi\nfs.bragi:3: unexpected token"
	if cerr.Error() != want {
		t.Fatalf("expected %q, got %q", want, cerr.Error())
	}
	if cerr.Output() != "parsing fs.bragifs.bragi:3: unexpected token" {
		t.Fatalf("unexpected combined output %q", cerr.Output())
	}
}

func TestInvokeNonZeroWithoutRunnerError(t *testing.T) {
	runner := &fakeRunner{code: 2}
	_, err := NewInvoker(runner).Invoke(context.Background(), Request{
		Sources:  []string{"x.bragi"},
		Output:   filepath.Join(t.TempDir(), "x.go"),
		Language: "go",
	})
	var cerr *Error
	if !errors.As(err, &cerr) || cerr.ExitCode != 2 {
		t.Fatalf("expected *Error with exit code 2, got %v", err)
	}
}

func TestInvokeValidatesRequest(t *testing.T) {
	inv := NewInvoker(&fakeRunner{})
	cases := []struct {
		req  Request
		want error
	}{
		{Request{Output: "o", Language: "go"}, ErrNoSources},
		{Request{Sources: []string{"s"}, Language: "go"}, ErrNoOutput},
		{Request{Sources: []string{"s"}, Output: "o"}, ErrNoLanguage},
	}
	for _, tc := range cases {
		if _, err := inv.Invoke(context.Background(), tc.req); !errors.Is(err, tc.want) {
			t.Fatalf("expected %v, got %v", tc.want, err)
		}
	}
}

func TestInvokeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewInvoker(&fakeRunner{}).Invoke(ctx, Request{
		Sources:  []string{"x.bragi"},
		Output:   filepath.Join(t.TempDir(), "x.go"),
		Language: "go",
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStale(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "fs.bragi")
	out := filepath.Join(dir, "fs.go")
	if err := os.WriteFile(src, []byte("message A 1 {}"), 0o600); err != nil {
		t.Fatalf("write source: %v", err)
	}
	req := Request{Sources: []string{"fs.bragi"}, Output: "fs.go", Language: "go", Dir: dir}

	stale, err := Stale(req)
	if err != nil || !stale {
		t.Fatalf("missing output must be stale: stale=%v err=%v", stale, err)
	}

	if err := os.WriteFile(out, []byte("package fs"), 0o600); err != nil {
		t.Fatalf("write output: %v", err)
	}
	old := time.Now().Add(-time.Hour)
	if err := os.Chtimes(src, old, old); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if stale, err := Stale(req); err != nil || stale {
		t.Fatalf("fresh output reported stale=%v err=%v", stale, err)
	}

	if err := os.Chtimes(src, time.Now().Add(time.Hour), time.Now().Add(time.Hour)); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if stale, err := Stale(req); err != nil || !stale {
		t.Fatalf("newer source must be stale: stale=%v err=%v", stale, err)
	}
}
