package run

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"tedit/internal/log"
)

// Result captures a finished subprocess. Failures such as a missing binary
// or a timeout are reported in-band with Code -1; they are informational,
// never fatal to the editor.
type Result struct {
	Code   int
	Stdout string
	Stderr string
}

// Render formats the result the way the output pager displays it.
func (r Result) Render() string {
	return fmt.Sprintf("--- stdout ---\n%s\n--- stderr ---\n%s\n(returncode=%d)\n", r.Stdout, r.Stderr, r.Code)
}

// Runner is the process collaborator: it runs one command to completion and
// captures its output.
type Runner interface {
	Run(ctx context.Context, argv []string, dir string) Result
}

// ExecRunner runs commands through os/exec, blocking until the process
// exits or ctx expires.
type ExecRunner struct{}

// Run implements Runner.
func (ExecRunner) Run(ctx context.Context, argv []string, dir string) Result {
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := Result{Stdout: stdout.String(), Stderr: stderr.String()}

	switch {
	case ctx.Err() == context.DeadlineExceeded:
		res.Code = -1
		res.Stderr = "process timed out"
	case err != nil:
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.Code = exitErr.ExitCode()
		} else {
			res.Code = -1
			res.Stderr = fmt.Sprintf("command not found: %s", argv[0])
		}
	default:
		res.Code = 0
	}

	log.LogWithFields(log.F("argv", argv), log.F("code", res.Code)).Debug("subprocess finished")
	return res
}

// Execute resolves the run rule for file and carries it out: an optional
// compile step into a temporary executable, then the run step. The rendered
// output of the last phase is returned for the display layer.
func Execute(ctx context.Context, d *Dispatcher, runner Runner, file, dir string) (string, error) {
	rule, err := d.Resolve(filepath.Ext(file))
	if err != nil {
		return "", err
	}

	if !rule.NeedsCompile() {
		return runner.Run(ctx, Expand(rule.Run, file, ""), dir).Render(), nil
	}

	exe, err := tempExePath()
	if err != nil {
		return "", err
	}
	defer os.Remove(exe)

	if res := runner.Run(ctx, Expand(rule.Compile, file, exe), dir); res.Code != 0 {
		return "compile failed\n" + res.Render(), nil
	}
	return runner.Run(ctx, Expand(rule.Run, file, exe), dir).Render(), nil
}

// tempExePath reserves a path for the compile artifact.
func tempExePath() (string, error) {
	f, err := os.CreateTemp("", "tedit_*")
	if err != nil {
		return "", err
	}
	name := f.Name()
	f.Close()
	// The compiler rewrites the file; only the name needs to exist.
	return name, nil
}
