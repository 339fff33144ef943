package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyCommand   = errors.New("empty command")
	ErrUnknownCommand = errors.New("unknown command")
)

// UsageError reports a command given too few arguments.
type UsageError struct {
	Command string
	Syntax  string
}

func (e *UsageError) Error() string {
	return fmt.Sprintf("Usage: %s", e.Syntax)
}

type CommandKind string

const (
	CmdAddFolder    CommandKind = "add-folder"
	CmdAddFile      CommandKind = "add-file"
	CmdRemoveFolder CommandKind = "remove-folder"
	CmdRemoveFile   CommandKind = "remove-file"
	CmdSearchFile   CommandKind = "search-file"
	CmdSearchFolder CommandKind = "search-folder"
	CmdDisplay      CommandKind = "display"
	CmdExit         CommandKind = "exit"
)

type commandSpec struct {
	syntax  string
	minArgs int
}

// minArgs counts the command word itself.
var commandSpecs = map[CommandKind]commandSpec{
	CmdAddFolder:    {syntax: "add-folder <path> <name>", minArgs: 3},
	CmdAddFile:      {syntax: "add-file <path> <name> <content>", minArgs: 4},
	CmdRemoveFolder: {syntax: "remove-folder <path> <name>", minArgs: 3},
	CmdRemoveFile:   {syntax: "remove-file <path> <name>", minArgs: 3},
	CmdSearchFile:   {syntax: "search-file <name>", minArgs: 2},
	CmdSearchFolder: {syntax: "search-folder <name>", minArgs: 2},
	CmdDisplay:      {syntax: "display", minArgs: 1},
	CmdExit:         {syntax: "exit", minArgs: 1},
}

// CommandOrder lists commands the way the help text presents them.
var CommandOrder = []CommandKind{
	CmdAddFolder, CmdAddFile, CmdRemoveFolder, CmdRemoveFile,
	CmdSearchFile, CmdSearchFolder, CmdDisplay, CmdExit,
}

// Syntax returns the usage line for a command kind.
func (k CommandKind) Syntax() string {
	return commandSpecs[k].syntax
}

type Command struct {
	Kind    CommandKind
	Path    string
	Name    string
	Content string
}

// ParseCommand splits a line on single spaces. Runs of spaces produce empty
// tokens, which keeps the original spacing inside file content.
func ParseCommand(line string) (*Command, error) {
	args := strings.Split(strings.TrimSpace(line), " ")
	if args[0] == "" {
		return nil, ErrEmptyCommand
	}

	kind := CommandKind(args[0])
	spec, ok := commandSpecs[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
	if len(args) < spec.minArgs {
		return nil, &UsageError{Command: args[0], Syntax: spec.syntax}
	}

	cmd := &Command{Kind: kind}
	switch kind {
	case CmdAddFolder, CmdRemoveFolder, CmdRemoveFile:
		cmd.Path, cmd.Name = args[1], args[2]
	case CmdAddFile:
		cmd.Path, cmd.Name = args[1], args[2]
		cmd.Content = strings.Join(args[3:], " ")
	case CmdSearchFile, CmdSearchFolder:
		cmd.Name = args[1]
	}
	return cmd, nil
}
