// Package shell is the line-oriented terminal front end of the PG client.
// It reads commands, drives the view-states and prints their snapshots.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/venky2135/pg-management-system/internal/model"
	"github.com/venky2135/pg-management-system/internal/viewstate"
	"golang.org/x/term"
)

// Directory is what the shell needs from the student client.
type Directory interface {
	viewstate.StudentService
	Get(ctx context.Context, id int64) (*model.Student, error)
	SearchByEmail(ctx context.Context, email string) ([]model.Student, error)
	SearchByRoom(ctx context.Context, roomNo string) ([]model.Student, error)
}

// Ledger is what the shell needs from the fee client.
type Ledger interface {
	viewstate.FeeService
	List(ctx context.Context) ([]model.Fee, error)
}

// Options tune a Shell.
type Options struct {
	// Interactive prints the command prompt and field labels.
	Interactive bool
	// FeeForm options applied to every student card.
	FeeForm []viewstate.FeeFormOption
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Shell reads commands from in and writes results to out. It is also the
// Dialog of every view-state it drives.
type Shell struct {
	in          *bufio.Reader
	out         io.Writer
	interactive bool
	log         zerolog.Logger

	students Directory
	fees     Ledger
	list     *viewstate.StudentList
	cards    *viewstate.CardSet
	commands []command
}

// New builds a shell over the given clients.
func New(in io.Reader, out io.Writer, students Directory, fees Ledger, log zerolog.Logger, opts Options) *Shell {
	s := &Shell{
		in:          bufio.NewReader(in),
		out:         out,
		interactive: opts.Interactive,
		log:         log.With().Str("component", "shell").Logger(),
		students:    students,
		fees:        fees,
	}
	s.list = viewstate.NewStudentList(students, s, log)
	s.cards = viewstate.NewCardSet(fees, s, log, s.list.OnFeeSaved, opts.FeeForm...)
	s.commands = s.registry()
	return s
}

// List exposes the student list view-state.
func (s *Shell) List() *viewstate.StudentList {
	return s.list
}

// Confirm prints prompt and reads a y/N answer. Anything but y or yes,
// including end of input, declines.
func (s *Shell) Confirm(prompt string) bool {
	fmt.Fprintf(s.out, "%s [y/N]: ", prompt)
	line, ok := s.readLine()
	if !ok {
		fmt.Fprintln(s.out)
		return false
	}
	switch strings.ToLower(line) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// Notify prints message on its own line.
func (s *Shell) Notify(message string) {
	fmt.Fprintln(s.out, message)
}

// Run loads the students and processes commands until quit, end of input,
// or ctx is done.
func (s *Shell) Run(ctx context.Context) error {
	if s.interactive {
		fmt.Fprintln(s.out, "PG Management. Type 'help' for commands.")
	}
	s.list.LoadStudents(ctx)
	s.printLoadError()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if s.interactive {
			fmt.Fprint(s.out, "pg> ")
		}
		line, ok := s.readLine()
		if !ok {
			return nil
		}
		if line == "" {
			continue
		}

		name, rest, _ := strings.Cut(line, " ")
		if name == "quit" || name == "exit" {
			return nil
		}
		if err := s.dispatch(ctx, strings.ToLower(name), strings.TrimSpace(rest)); err != nil {
			fmt.Fprintf(s.out, "Error: %s\n", err)
		}
	}
}

func (s *Shell) dispatch(ctx context.Context, name, rest string) error {
	for _, c := range s.commands {
		if c.name == name {
			s.log.Debug().Str("command", name).Msg("Dispatch")
			return c.run(ctx, rest)
		}
	}
	return fmt.Errorf("unknown command %q, type 'help'", name)
}

// readLine returns the next trimmed line. ok is false at end of input.
func (s *Shell) readLine() (string, bool) {
	line, err := s.in.ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.log.Error().Err(err).Msg("Read input failed")
			return "", false
		}
		if line == "" {
			return "", false
		}
	}
	return strings.TrimSpace(line), true
}

// ask reads a field value, keeping current when the answer is blank.
func (s *Shell) ask(label, current string) string {
	if s.interactive {
		if current != "" {
			fmt.Fprintf(s.out, "%s [%s]: ", label, current)
		} else {
			fmt.Fprintf(s.out, "%s: ", label)
		}
	}
	line, ok := s.readLine()
	if !ok || line == "" {
		return current
	}
	return line
}

func (s *Shell) printLoadError() {
	if msg := s.list.Snapshot().ErrorMessage; msg != "" {
		fmt.Fprintf(s.out, "Error: %s\n", msg)
	}
}
