package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"foldertree/internal/core"
	"foldertree/internal/server/service"
)

const banner = "Folder Tree CLI Application"

type Options struct {
	Prompt string // printed before each line is read; empty prints nothing
	Quiet  bool   // skip the banner and command list
}

// Shell reads commands line by line and reports each outcome as text.
type Shell struct {
	svc  *service.TreeService
	out  io.Writer
	opts Options
}

func New(svc *service.TreeService, out io.Writer, opts Options) *Shell {
	return &Shell{svc: svc, out: out, opts: opts}
}

// Help returns the command list shown at startup.
func Help() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, kind := range core.CommandOrder {
		fmt.Fprintf(&b, "  %s\n", kind.Syntax())
	}
	return b.String()
}

// Run executes lines from r until exit or end of input. Lines have no length
// limit. Cancelling ctx ends the session cleanly, even while waiting for input,
// and a line read after cancellation is not executed.
func (sh *Shell) Run(ctx context.Context, r io.Reader) error {
	if !sh.opts.Quiet {
		fmt.Fprintln(sh.out, banner)
		fmt.Fprint(sh.out, Help())
	}

	done := make(chan struct{})
	defer close(done)
	lines, readErr := readLines(r, done)

	for {
		if ctx.Err() != nil {
			return nil
		}
		if sh.opts.Prompt != "" {
			fmt.Fprint(sh.out, sh.opts.Prompt)
		}

		select {
		case <-ctx.Done():
			return nil
		case line, ok := <-lines:
			if !ok {
				return <-readErr
			}
			if ctx.Err() != nil {
				return nil
			}
			if !sh.Execute(ctx, line) {
				return nil
			}
		}
	}
}

// readLines sends each line of r without its line ending. The lines channel is
// closed at end of input, after the read error (nil at EOF) is queued on errc.
// The reader stops once done is closed.
func readLines(r io.Reader, done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)
		br := bufio.NewReader(r)
		for {
			line, err := br.ReadString('\n')
			if err == nil || line != "" {
				line = strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r")
				select {
				case lines <- line:
				case <-done:
					errc <- nil
					return
				}
			}
			if err != nil {
				if errors.Is(err, io.EOF) {
					err = nil
				}
				errc <- err
				return
			}
		}
	}()

	return lines, errc
}

// Execute runs one command line. It returns false once the session should end.
func (sh *Shell) Execute(ctx context.Context, line string) bool {
	cmd, err := core.ParseCommand(line)
	if err != nil {
		sh.report(err)
		return true
	}

	switch cmd.Kind {
	case core.CmdAddFolder:
		sh.report(sh.svc.AddFolder(ctx, cmd.Path, cmd.Name))
	case core.CmdAddFile:
		sh.report(sh.svc.AddFile(ctx, cmd.Path, cmd.Name, cmd.Content))
	case core.CmdRemoveFolder:
		sh.report(sh.svc.RemoveFolder(ctx, cmd.Path, cmd.Name))
	case core.CmdRemoveFile:
		sh.report(sh.svc.RemoveFile(ctx, cmd.Path, cmd.Name))
	case core.CmdSearchFile:
		sh.printFound(sh.svc.SearchFile(ctx, cmd.Name))
	case core.CmdSearchFolder:
		sh.printFound(sh.svc.SearchFolder(ctx, cmd.Name))
	case core.CmdDisplay:
		if err := sh.svc.Display(sh.out); err != nil {
			slog.Error("failed to display tree", "error", err)
		}
	case core.CmdExit:
		return false
	}
	return true
}

func (sh *Shell) printFound(found string, err error) {
	if err != nil {
		sh.report(err)
		return
	}
	fmt.Fprintln(sh.out, found)
}

func (sh *Shell) report(err error) {
	if err == nil {
		return
	}
	if msg := Describe(err); msg != "" {
		fmt.Fprintln(sh.out, msg)
	}
}

// Describe turns a command error into the line shown to the operator.
// An empty path yields no output.
func Describe(err error) string {
	var (
		usageErr *core.UsageError
		pathErr  *core.PathError
		entryErr *core.EntryError
	)

	switch {
	case errors.Is(err, core.ErrEmptyCommand):
		return "Invalid command. Please enter a valid command."
	case errors.Is(err, core.ErrUnknownCommand):
		return "Invalid command."
	case errors.Is(err, core.ErrEmptyPath):
		return ""
	case errors.As(err, &usageErr):
		return usageErr.Error()
	case errors.As(err, &pathErr):
		return pathErr.Error()
	case errors.As(err, &entryErr) && errors.Is(err, core.ErrAlreadyExists):
		return entryErr.Kind.String() + " already exists."
	case errors.As(err, &entryErr) && errors.Is(err, core.ErrInvalidName):
		return "Invalid " + strings.ToLower(entryErr.Kind.String()) + " name."
	case errors.As(err, &entryErr) && errors.Is(err, core.ErrNotFound):
		return entryErr.Kind.String() + " not found."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}
