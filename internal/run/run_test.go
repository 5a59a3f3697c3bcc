package run

import (
	"context"
	"testing"
	"time"

	"tedit/internal/config"
	"tedit/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRunner records invocations and plays back scripted results.
type fakeRunner struct {
	calls   [][]string
	results []Result
}

func (f *fakeRunner) Run(_ context.Context, argv []string, _ string) Result {
	f.calls = append(f.calls, argv)
	if len(f.results) == 0 {
		return Result{Code: 0}
	}
	res := f.results[0]
	f.results = f.results[1:]
	return res
}

func TestResolve(t *testing.T) {
	d := NewDispatcher(nil)

	t.Run("python", func(t *testing.T) {
		rule, err := d.Resolve(".py")
		require.NoError(t, err)
		assert.False(t, rule.NeedsCompile())
		assert.Equal(t, []string{"python3", "{file}"}, rule.Run)
	})

	t.Run("c is compiled", func(t *testing.T) {
		rule, err := d.Resolve(".c")
		require.NoError(t, err)
		assert.True(t, rule.NeedsCompile())
		assert.Equal(t, "gcc", rule.Compile[0])
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := d.Resolve(".xyz")
		require.Error(t, err)
		assert.True(t, errors.IsUnsupportedExtension(err))
	})

	t.Run("case sensitive", func(t *testing.T) {
		_, err := d.Resolve(".PY")
		assert.Error(t, err)
	})

	t.Run("idempotent", func(t *testing.T) {
		first, err := d.Resolve(".rs")
		require.NoError(t, err)
		second, err := d.Resolve(".rs")
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestConfigOverrides(t *testing.T) {
	d := NewDispatcher(map[string]config.RunRuleConfig{
		".lua": {Run: []string{"lua", "{file}"}},
		".py":  {Run: []string{"python2", "{file}"}},
	})

	rule, err := d.Resolve(".lua")
	require.NoError(t, err)
	assert.Equal(t, []string{"lua", "{file}"}, rule.Run)

	rule, err = d.Resolve(".py")
	require.NoError(t, err)
	assert.Equal(t, "python2", rule.Run[0])
}

func TestExpand(t *testing.T) {
	argv := Expand([]string{"gcc", "{file}", "-o", "{exe}"}, "main.c", "/tmp/out")
	assert.Equal(t, []string{"gcc", "main.c", "-o", "/tmp/out"}, argv)
}

func TestExecute(t *testing.T) {
	d := NewDispatcher(nil)

	t.Run("interpreted rule runs once", func(t *testing.T) {
		fr := &fakeRunner{results: []Result{{Code: 0, Stdout: "hi\n"}}}
		out, err := Execute(context.Background(), d, fr, "a.py", "/tmp")

		require.NoError(t, err)
		require.Len(t, fr.calls, 1)
		assert.Equal(t, []string{"python3", "a.py"}, fr.calls[0])
		assert.Contains(t, out, "hi")
		assert.Contains(t, out, "(returncode=0)")
	})

	t.Run("compiled rule compiles then runs", func(t *testing.T) {
		fr := &fakeRunner{results: []Result{{Code: 0}, {Code: 0, Stdout: "done"}}}
		out, err := Execute(context.Background(), d, fr, "main.c", "/tmp")

		require.NoError(t, err)
		require.Len(t, fr.calls, 2)
		assert.Equal(t, "gcc", fr.calls[0][0])
		assert.Equal(t, "main.c", fr.calls[0][1])
		// The run phase executes the artifact named in the compile phase.
		assert.Equal(t, fr.calls[0][3], fr.calls[1][0])
		assert.Contains(t, out, "done")
	})

	t.Run("compile failure skips run phase", func(t *testing.T) {
		fr := &fakeRunner{results: []Result{{Code: 1, Stderr: "syntax error"}}}
		out, err := Execute(context.Background(), d, fr, "main.c", "/tmp")

		require.NoError(t, err)
		require.Len(t, fr.calls, 1)
		assert.Contains(t, out, "compile failed")
		assert.Contains(t, out, "syntax error")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		fr := &fakeRunner{}
		_, err := Execute(context.Background(), d, fr, "notes.txt", "/tmp")

		require.Error(t, err)
		assert.True(t, errors.IsUnsupportedExtension(err))
		assert.Empty(t, fr.calls)
	})
}

func TestExecRunner(t *testing.T) {
	t.Run("captures output and exit code", func(t *testing.T) {
		res := ExecRunner{}.Run(context.Background(), []string{"sh", "-c", "echo out; echo err >&2; exit 3"}, t.TempDir())

		assert.Equal(t, 3, res.Code)
		assert.Equal(t, "out\n", res.Stdout)
		assert.Equal(t, "err\n", res.Stderr)
	})

	t.Run("missing binary reported in band", func(t *testing.T) {
		res := ExecRunner{}.Run(context.Background(), []string{"tedit-no-such-binary"}, t.TempDir())

		assert.Equal(t, -1, res.Code)
		assert.Contains(t, res.Stderr, "command not found")
	})

	t.Run("timeout reported in band", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		res := ExecRunner{}.Run(ctx, []string{"sleep", "5"}, t.TempDir())
		assert.Equal(t, -1, res.Code)
		assert.Contains(t, res.Stderr, "timed out")
	})
}

func TestResultRender(t *testing.T) {
	out := Result{Code: 2, Stdout: "a", Stderr: "b"}.Render()
	assert.Contains(t, out, "--- stdout ---\na")
	assert.Contains(t, out, "--- stderr ---\nb")
	assert.Contains(t, out, "(returncode=2)")
}
