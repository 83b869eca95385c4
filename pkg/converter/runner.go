// Package converter runs the external image converter under test.
package converter

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/sdejongh/convcheck/pkg/models"
)

// Command describes one converter invocation
type Command struct {
	Argv []string
	// Dir is the working directory (empty = current)
	Dir    string
	Stdout io.Writer
	Stderr io.Writer
	// Timeout kills the process after the given duration (0 = no limit)
	Timeout time.Duration
}

// Result describes a converter process that ran to completion
type Result struct {
	Argv     []string
	ExitCode int
	Duration time.Duration
}

// Runner starts a converter and waits for it
type Runner interface {
	Run(ctx context.Context, cmd Command) (*Result, error)
}

// BuildArgv assembles [program...] [flags...] <input> <output>
func BuildArgv(command, flags []string, input, output string) []string {
	argv := make([]string, 0, len(command)+len(flags)+2)
	argv = append(argv, command...)
	argv = append(argv, flags...)
	return append(argv, input, output)
}

// OSRunner runs the converter as a child process
type OSRunner struct {
	// waitDelay bounds how long Wait blocks on inherited pipes after a kill
	waitDelay time.Duration
}

// NewOSRunner creates a runner backed by os/exec
func NewOSRunner() *OSRunner {
	return &OSRunner{waitDelay: 5 * time.Second}
}

// Run executes the command synchronously. A non-zero exit is reported through
// Result.ExitCode; failing to start or hitting the timeout is a *models.SubprocessError.
func (r *OSRunner) Run(ctx context.Context, command Command) (*Result, error) {
	if len(command.Argv) == 0 {
		return nil, &models.SubprocessError{Err: errors.New("no command specified")}
	}

	if command.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, command.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, command.Argv[0], command.Argv[1:]...)
	cmd.Dir = command.Dir
	cmd.Env = os.Environ()
	cmd.Stdout = command.Stdout
	cmd.Stderr = command.Stderr
	cmd.WaitDelay = r.waitDelay

	start := time.Now()
	if err := cmd.Start(); err != nil {
		return nil, &models.SubprocessError{Argv: command.Argv, Err: err}
	}

	err := cmd.Wait()
	result := &Result{
		Argv:     command.Argv,
		ExitCode: cmd.ProcessState.ExitCode(),
		Duration: time.Since(start),
	}

	if errors.Is(ctx.Err(), context.DeadlineExceeded) && command.Timeout > 0 {
		return result, &models.SubprocessError{
			Argv:     command.Argv,
			ExitCode: result.ExitCode,
			Timeout:  command.Timeout,
			Err:      ctx.Err(),
		}
	}
	if ctx.Err() != nil {
		return result, &models.SubprocessError{
			Argv:        command.Argv,
			ExitCode:    result.ExitCode,
			Interrupted: true,
			Err:         ctx.Err(),
		}
	}

	var exitErr *exec.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		return result, &models.SubprocessError{Argv: command.Argv, ExitCode: result.ExitCode, Err: err}
	}

	return result, nil
}
