package compiler

import (
	"context"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/danmuck/bragi/internal/observability"
	"github.com/danmuck/bragi/internal/tools"
)

// DefaultCompiler is the binary name used when a Request leaves Compiler empty.
const DefaultCompiler = "bragi"

var (
	ErrNoSources  = errors.New("compiler: no schema sources")
	ErrNoOutput   = errors.New("compiler: no output path")
	ErrNoLanguage = errors.New("compiler: no target language")
)

// Request names one compiler run.
type Request struct {
	Compiler     string
	Sources      []string
	Output       string
	Language     string
	LanguageArgs []string
	// Dir is the working directory for the run; empty means the current one.
	Dir string
}

// Result describes a successful run.
type Result struct {
	Output   string
	Sources  []string
	Stdout   []byte
	Stderr   []byte
	Duration time.Duration
}

// Error is a compiler run that exited non-zero or could not be started.
type Error struct {
	Compiler string
	ExitCode int32
	Stdout   []byte
	Stderr   []byte
	Err      error
}

func (e *Error) Error() string {
	return "bragi compiler failed:\n" + string(e.Stdout) + "\n" + string(e.Stderr)
}

func (e *Error) Unwrap() error { return e.Err }

// Output returns stdout followed by stderr.
func (e *Error) Output() string {
	return string(e.Stdout) + string(e.Stderr)
}

func (r Request) compiler() string {
	if r.Compiler == "" {
		return DefaultCompiler
	}
	return r.Compiler
}

func (r Request) validate() error {
	if len(r.Sources) == 0 {
		return ErrNoSources
	}
	if r.Output == "" {
		return ErrNoOutput
	}
	if r.Language == "" {
		return ErrNoLanguage
	}
	return nil
}

// Args returns the argument vector passed to the compiler binary.
func Args(r Request) []string {
	args := make([]string, 0, 3+len(r.Sources)+len(r.LanguageArgs))
	args = append(args, "-o", r.Output)
	args = append(args, r.Sources...)
	args = append(args, r.Language)
	args = append(args, r.LanguageArgs...)
	return args
}

type Invoker struct {
	runner tools.CommandRunner
	logger zerolog.Logger
}

func NewInvoker(runner tools.CommandRunner) *Invoker {
	if runner == nil {
		runner = tools.ExecRunner{}
	}
	return &Invoker{runner: runner, logger: observability.Component("compiler")}
}

// Invoke runs the compiler with the default process runner.
func Invoke(ctx context.Context, req Request) (Result, error) {
	return NewInvoker(nil).Invoke(ctx, req)
}

func (i *Invoker) Invoke(ctx context.Context, req Request) (Result, error) {
	if err := req.validate(); err != nil {
		return Result{}, err
	}
	if err := tools.EnsureParentDir(tools.ResolvePath(req.Dir, req.Output)); err != nil {
		return Result{}, errors.Wrapf(err, "compiler: prepare output %s", req.Output)
	}

	name := req.compiler()
	args := Args(req)
	i.logger.Debug().Str("compiler", name).Strs("args", args).Msg("compiler run")

	start := time.Now()
	stdout, stderr, code, err := i.runner.Run(ctx, req.Dir, name, args...)
	elapsed := time.Since(start)

	if ctxErr := ctx.Err(); ctxErr != nil {
		observability.RecordCompilerRun(req.Language, elapsed, false)
		return Result{}, errors.Wrapf(ctxErr, "compiler: %s interrupted", name)
	}
	if err != nil || code != 0 {
		observability.RecordCompilerRun(req.Language, elapsed, false)
		i.logger.Error().Str("compiler", name).Int32("exit_code", code).Dur("duration", elapsed).Msg("compiler failed")
		return Result{}, &Error{Compiler: name, ExitCode: code, Stdout: stdout, Stderr: stderr, Err: err}
	}

	observability.RecordCompilerRun(req.Language, elapsed, true)
	i.logger.Info().Str("output", req.Output).Dur("duration", elapsed).Msg("bindings generated")
	return Result{
		Output:   req.Output,
		Sources:  req.Sources,
		Stdout:   stdout,
		Stderr:   stderr,
		Duration: elapsed,
	}, nil
}

// Stale reports whether req.Output is missing or older than any of its
// sources. Callers use it to skip runs whose inputs did not change.
func Stale(req Request) (bool, error) {
	out, err := os.Stat(tools.ResolvePath(req.Dir, req.Output))
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.Wrapf(err, "compiler: stat %s", req.Output)
	}
	for _, src := range req.Sources {
		info, err := os.Stat(tools.ResolvePath(req.Dir, src))
		if err != nil {
			return false, errors.Wrapf(err, "compiler: stat %s", src)
		}
		if info.ModTime().After(out.ModTime()) {
			return true, nil
		}
	}
	return false, nil
}
