package command

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"tedit/internal/errors"
	"tedit/internal/fs"
	"tedit/internal/log"
	"tedit/internal/run"
	"tedit/pkg/buffer"
)

// HelpText is the static output of :help.
const HelpText = `tedit commands

  :w [FILE]    save buffer (to FILE, adopting it as the buffer path)
  :wq          save and quit
  :q           quit; blocked while the buffer has unsaved changes
  :q!          quit, discarding unsaved changes
  :r           save, then compile and run the current file
  :open FILE   open a file
  :cd DIR      change the working directory
  :mkdir DIR   create a directory
  :ls [DIR]    list a directory
  :help        show this help

Keys: esc enters command mode, i returns to editing.
`

// Result reports the observable outcome of a command: whether the editor
// should quit, a new working directory to adopt, a transient status message
// and optional pager output.
type Result struct {
	Quit    bool
	Workdir string
	Status  string
	Output  string
}

// Interpreter executes parsed commands. Execution is atomic: when an error
// is returned, buffer and session state are exactly as they were before.
type Interpreter struct {
	buf        *buffer.Buffer
	lister     *fs.Lister
	dispatcher *run.Dispatcher
	runner     run.Runner
	runTimeout time.Duration
}

// New wires an interpreter to its collaborators.
func New(buf *buffer.Buffer, lister *fs.Lister, dispatcher *run.Dispatcher, runner run.Runner, runTimeout time.Duration) *Interpreter {
	return &Interpreter{
		buf:        buf,
		lister:     lister,
		dispatcher: dispatcher,
		runner:     runner,
		runTimeout: runTimeout,
	}
}

// Execute runs cmd with paths resolved against workdir.
func (it *Interpreter) Execute(workdir string, cmd Command) (Result, error) {
	log.LogWithFields(log.F("kind", cmd.Kind), log.F("raw", cmd.Raw)).Debug("executing command")

	switch cmd.Kind {
	case Nop:
		return Result{}, nil

	case Write:
		return it.write(workdir, cmd.Arg)

	case WriteQuit:
		res, err := it.write(workdir, "")
		if err != nil {
			// The quit is aborted when the save fails.
			return Result{}, err
		}
		res.Quit = true
		return res, nil

	case Quit:
		if it.buf.Dirty() {
			return Result{}, errors.NewKind("unsaved changes, use :q! to discard or :w to save", errors.UnsavedChanges)
		}
		return Result{Quit: true}, nil

	case ForceQuit:
		return Result{Quit: true}, nil

	case Run:
		return it.runFile(workdir)

	case Open:
		if cmd.Arg == "" {
			return Result{}, errors.NewKind("usage: :open FILE", errors.Unknown)
		}
		path := fs.Resolve(workdir, cmd.Arg)
		if err := it.buf.Load(path); err != nil {
			return Result{}, err
		}
		return Result{Status: fmt.Sprintf("opened %s", cmd.Arg)}, nil

	case ChangeDir:
		if cmd.Arg == "" {
			return Result{}, errors.NewKind("usage: :cd DIR", errors.Unknown)
		}
		resolved, err := fs.ResolveDir(workdir, cmd.Arg)
		if err != nil {
			return Result{}, err
		}
		return Result{Workdir: resolved, Status: fmt.Sprintf("cwd: %s", resolved)}, nil

	case MakeDir:
		if cmd.Arg == "" {
			return Result{}, errors.NewKind("usage: :mkdir DIR", errors.Unknown)
		}
		if err := fs.MakeDir(fs.Resolve(workdir, cmd.Arg)); err != nil {
			return Result{}, err
		}
		return Result{Status: fmt.Sprintf("created %s", cmd.Arg)}, nil

	case List:
		dir := fs.Resolve(workdir, cmd.Arg)
		names, err := it.lister.List(dir)
		if err != nil {
			return Result{}, err
		}
		if len(names) == 0 {
			return Result{Output: "(empty)"}, nil
		}
		return Result{Output: strings.Join(names, "\n")}, nil

	case Help:
		return Result{Output: HelpText}, nil

	default:
		return Result{}, errors.NewCommandError("unknown command", cmd.Raw, errors.UnknownCommand, nil)
	}
}

func (it *Interpreter) write(workdir, arg string) (Result, error) {
	path := ""
	if arg != "" {
		path = fs.Resolve(workdir, arg)
	}
	if err := it.buf.Save(path); err != nil {
		return Result{}, err
	}
	return Result{Status: fmt.Sprintf("saved %s", it.buf.Path())}, nil
}

func (it *Interpreter) runFile(workdir string) (Result, error) {
	path := it.buf.Path()
	if path == "" {
		return Result{}, errors.NewFileError("no file to run, save first with :w FILE", "", errors.NoFileAssociated, nil)
	}
	// The buffer is persisted first so the subprocess sees current content.
	if err := it.buf.Save(""); err != nil {
		return Result{}, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), it.runTimeout)
	defer cancel()

	output, err := run.Execute(ctx, it.dispatcher, it.runner, path, workdir)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Status: fmt.Sprintf("ran %s", filepath.Base(path)),
		Output: output,
	}, nil
}
