package tui

// FileChangedMsg reports that the file backing the buffer was modified on
// disk by another process.
type FileChangedMsg struct {
	Path string
}
