// Package command parses colon-command lines into typed commands and
// executes them against the buffer and the file-system and process
// collaborators.
package command

import "strings"

// Kind identifies a parsed colon command.
type Kind int

const (
	Unknown Kind = iota
	Nop
	Write
	WriteQuit
	Quit
	ForceQuit
	Run
	Open
	ChangeDir
	MakeDir
	List
	Help
)

// Command is the parsed form of one command line. Arg carries the remainder
// of the line after the verb, verbatim, so paths may contain spaces.
type Command struct {
	Kind Kind
	Arg  string
	Raw  string
}

// Parse turns a captured command line into a Command. A leading colon is
// tolerated and stripped; a blank line parses to Nop.
func Parse(raw string) Command {
	text := strings.TrimSpace(raw)
	text = strings.TrimPrefix(text, ":")
	text = strings.TrimSpace(text)
	if text == "" {
		return Command{Kind: Nop, Raw: raw}
	}

	verb := text
	arg := ""
	if i := strings.IndexAny(text, " \t"); i >= 0 {
		verb = text[:i]
		arg = strings.TrimSpace(text[i+1:])
	}

	cmd := Command{Arg: arg, Raw: text}
	switch verb {
	case "w":
		cmd.Kind = Write
	case "wq":
		cmd.Kind = WriteQuit
	case "q":
		if arg == "!" {
			cmd.Kind = ForceQuit
		} else {
			cmd.Kind = Quit
		}
	case "q!":
		cmd.Kind = ForceQuit
	case "r":
		cmd.Kind = Run
	case "open":
		cmd.Kind = Open
	case "cd":
		cmd.Kind = ChangeDir
	case "mkdir":
		cmd.Kind = MakeDir
	case "ls":
		cmd.Kind = List
	case "help":
		cmd.Kind = Help
	default:
		cmd.Kind = Unknown
	}
	return cmd
}
