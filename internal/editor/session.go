// Package editor owns the editing session: the text buffer, the two-mode
// state machine routing key events, the in-progress command line and the
// working directory. It never talks to the terminal; the TUI layer feeds it
// decoded key events and renders its state.
package editor

import (
	"os"
	"strings"
	"time"

	"tedit/internal/command"
	"tedit/internal/config"
	"tedit/internal/fs"
	"tedit/internal/log"
	"tedit/internal/run"
	"tedit/pkg/buffer"
	"tedit/pkg/types"
)

// Event is what one key event produced beyond internal state changes:
// a quit signal and/or text for the output pager.
type Event struct {
	Quit   bool
	Output string
}

// StatusLevel classifies the transient status message so the terminal layer
// can color it.
type StatusLevel int

const (
	StatusInfo StatusLevel = iota
	StatusWarn
	StatusError
)

// Session is the single source of truth for input routing and editor state.
type Session struct {
	buf    *buffer.Buffer
	interp *command.Interpreter

	mode        types.Mode
	commandLine string
	workdir     string

	status      string
	statusLevel StatusLevel
	statusUntil time.Time
	statusTTL   time.Duration

	tab string
}

// New creates a session wired to the real process collaborator.
func New(cfg *config.Config) (*Session, error) {
	return NewWithRunner(cfg, run.ExecRunner{})
}

// NewWithRunner creates a session with an explicit process collaborator,
// which tests substitute with a stub.
func NewWithRunner(cfg *config.Config, runner run.Runner) (*Session, error) {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	lister, err := fs.NewLister(cfg.Listing.Ignore)
	if err != nil {
		return nil, err
	}

	buf := buffer.New()
	interp := command.New(
		buf,
		lister,
		run.NewDispatcher(cfg.Run),
		runner,
		time.Duration(cfg.Editor.RunTimeoutSecs)*time.Second,
	)

	return &Session{
		buf:       buf,
		interp:    interp,
		mode:      types.EditorMode,
		workdir:   wd,
		statusTTL: time.Duration(cfg.Editor.StatusTimeoutSecs) * time.Second,
		tab:       strings.Repeat(" ", cfg.Editor.TabWidth),
	}, nil
}

// Buffer returns the session's text buffer.
func (s *Session) Buffer() *buffer.Buffer {
	return s.buf
}

// Mode returns the current input mode.
func (s *Session) Mode() types.Mode {
	return s.mode
}

// CommandLine returns the command text typed so far. It is non-empty only
// while the session is in command mode.
func (s *Session) CommandLine() string {
	return s.commandLine
}

// WorkingDir returns the current working directory, mutated only by :cd.
func (s *Session) WorkingDir() string {
	return s.workdir
}

// Status returns the transient status message, dropping it once expired.
func (s *Session) Status() string {
	if s.status != "" && time.Now().After(s.statusUntil) {
		s.status = ""
		s.statusLevel = StatusInfo
	}
	return s.status
}

// StatusLevel returns the severity of the current status message.
func (s *Session) StatusLevel() StatusLevel {
	return s.statusLevel
}

func (s *Session) setStatus(msg string, level StatusLevel) {
	s.status = msg
	s.statusLevel = level
	s.statusUntil = time.Now().Add(s.statusTTL)
}

// Notify posts a transient status message from outside the key-event flow,
// such as the on-disk change watcher.
func (s *Session) Notify(msg string) {
	s.setStatus(msg, StatusWarn)
}

// OpenFile loads a file into the buffer, typically the program argument.
// Failure is reported as a status message, not an error: the editor starts
// with an empty buffer either way.
func (s *Session) OpenFile(path string) {
	if err := s.buf.Load(fs.Resolve(s.workdir, path)); err != nil {
		s.setStatus(err.Error(), StatusError)
		return
	}
	s.setStatus("opened "+path, StatusInfo)
}

// HandleKey routes one key event according to the current mode and returns
// what it produced. One event is fully processed before the next arrives.
func (s *Session) HandleKey(k types.Key) Event {
	// Arrow navigation works in both modes.
	switch k.Kind {
	case types.KeyLeft:
		s.buf.Move(buffer.Left)
		return Event{}
	case types.KeyRight:
		s.buf.Move(buffer.Right)
		return Event{}
	case types.KeyUp:
		s.buf.Move(buffer.Up)
		return Event{}
	case types.KeyDown:
		s.buf.Move(buffer.Down)
		return Event{}
	}

	if s.mode == types.CommandMode {
		return s.handleCommandKey(k)
	}
	return s.handleEditorKey(k)
}

func (s *Session) handleEditorKey(k types.Key) Event {
	switch k.Kind {
	case types.KeyEscape:
		s.mode = types.CommandMode
		s.commandLine = ""
	case types.KeyEnter:
		s.buf.InsertNewline()
	case types.KeyBackspace:
		s.buf.DeleteBackward()
	case types.KeyTab:
		s.buf.InsertString(s.tab)
	case types.KeyRune:
		s.buf.InsertRune(k.Rune)
	}
	return Event{}
}

func (s *Session) handleCommandKey(k types.Key) Event {
	switch k.Kind {
	case types.KeyEscape:
		// Cancel the partially typed command without executing it.
		s.commandLine = ""
	case types.KeyEnter:
		return s.submit()
	case types.KeyBackspace:
		if runes := []rune(s.commandLine); len(runes) > 0 {
			s.commandLine = string(runes[:len(runes)-1])
		}
	case types.KeyRune:
		// A bare i re-enters editor mode; within a command it is text,
		// otherwise :mkdir could never be typed.
		if k.Rune == 'i' && (s.commandLine == "" || s.commandLine == ":") {
			s.commandLine = ""
			s.mode = types.EditorMode
			return Event{}
		}
		s.commandLine += string(k.Rune)
	}
	return Event{}
}

// submit parses and executes the captured command line. The session stays
// in command mode afterwards unless the command quit the editor; failures
// become status messages and leave all state untouched.
func (s *Session) submit() Event {
	cmd := command.Parse(s.commandLine)
	s.commandLine = ""

	res, err := s.interp.Execute(s.workdir, cmd)
	if err != nil {
		log.LogWithFields(log.F("raw", cmd.Raw)).Debugf("command failed: %v", err)
		s.setStatus(err.Error(), StatusError)
		return Event{}
	}

	if res.Workdir != "" {
		s.workdir = res.Workdir
	}
	if res.Status != "" {
		s.setStatus(res.Status, StatusInfo)
	}
	return Event{Quit: res.Quit, Output: res.Output}
}
