package types

// Mode represents the current input mode of the editor
type Mode int

const (
	// EditorMode is the initial mode where keystrokes mutate the text buffer
	EditorMode Mode = iota
	// CommandMode is the mode where keystrokes accumulate a colon-command line
	CommandMode
)

// String returns the status-bar label for the mode.
func (m Mode) String() string {
	switch m {
	case EditorMode:
		return "EDITOR"
	case CommandMode:
		return "COMMAND"
	default:
		return "UNKNOWN"
	}
}
