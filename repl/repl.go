// Package repl is an interactive checker. Each accepted line is appended to
// the program and the whole program is checked again from scratch; a line
// that makes the program ill-formed is reported and dropped.
package repl

import (
	"bufio"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/RednibCoding/FlatBasic/errors"
	"github.com/RednibCoding/FlatBasic/frontend"
	"github.com/alecthomas/repr"
	"github.com/peterh/liner"
)

const filename = "<repl>"

type Outcome int

const (
	Accepted Outcome = iota
	// NeedMore means the line left a construct open (proc, if, type...).
	NeedMore
	Rejected
)

type Session struct {
	source  strings.Builder
	pending strings.Builder
	last    *frontend.Result
}

func NewSession() *Session {
	return &Session{}
}

// Feed adds one line of input.
func (s *Session) Feed(line string) (Outcome, error) {
	s.pending.WriteString(line)
	s.pending.WriteString("\n")

	src := s.source.String() + s.pending.String()
	res, err := frontend.Check(src, filename)
	if err != nil {
		if errors.IsIncomplete(err) {
			return NeedMore, nil
		}
		s.pending.Reset()
		return Rejected, err
	}

	s.source.WriteString(s.pending.String())
	s.pending.Reset()
	s.last = res
	return Accepted, nil
}

// Pending reports whether an open construct is waiting for more lines.
func (s *Session) Pending() bool {
	return s.pending.Len() > 0
}

func (s *Session) Reset() {
	s.source.Reset()
	s.pending.Reset()
	s.last = nil
}

func (s *Session) Source() string {
	return s.source.String()
}

// Symbols lists the global declarations and struct types of the accepted
// program, one per line.
func (s *Session) Symbols() []string {
	if s.last == nil {
		return nil
	}

	table := s.last.Analyzer.Symbols()
	var lines []string
	for _, name := range table.Types.Names() {
		st, _ := table.Types.Lookup(name)
		var fields []string
		for _, f := range st.Fields {
			fields = append(fields, fmt.Sprintf("%s: %s", f.Name, f.Symbol.TypeString()))
		}
		lines = append(lines, fmt.Sprintf("type %s {%s}", name, strings.Join(fields, ", ")))
	}
	for _, name := range table.Globals() {
		sym, _ := table.LookupGlobal(name)
		lines = append(lines, fmt.Sprintf("%s: %s", name, sym))
	}
	return lines
}

// Command runs a ':' command. It reports whether the session should end.
func (s *Session) Command(line string, out io.Writer) (quit bool, err error) {
	switch strings.TrimSpace(line) {
	case ":quit", ":q":
		return true, nil
	case ":reset":
		s.Reset()
	case ":source":
		fmt.Fprint(out, s.Source())
	case ":ast":
		if s.last != nil {
			fmt.Fprintln(out, repr.String(s.last.Program, repr.Indent("  "), repr.OmitEmpty(true)))
		}
	case ":symbols":
		for _, l := range s.Symbols() {
			fmt.Fprintln(out, l)
		}
	default:
		return false, fmt.Errorf("unknown command %s", strings.TrimSpace(line))
	}
	return false, nil
}

// handle processes one line and reports whether to stop.
func (s *Session) handle(line string, out, errOut io.Writer) bool {
	if !s.Pending() && strings.HasPrefix(strings.TrimSpace(line), ":") {
		quit, err := s.Command(line, out)
		if err != nil {
			fmt.Fprintln(errOut, err)
		}
		return quit
	}

	if _, err := s.Feed(line); err != nil {
		fmt.Fprintln(errOut, errors.Format(err))
	}
	return false
}

// RunBuffered reads lines from in without line editing.
func RunBuffered(in io.Reader, out, errOut io.Writer) {
	s := NewSession()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if s.handle(scanner.Text(), out, errOut) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		fmt.Fprintf(errOut, "read error: %v\n", err)
	}
}

// Run starts the REPL on the terminal, falling back to plain reading when
// stdin is not one.
func Run() {
	if !isInteractive() {
		RunBuffered(os.Stdin, os.Stdout, os.Stderr)
		return
	}

	state := liner.NewLiner()
	defer state.Close()
	state.SetCtrlCAborts(true)

	historyPath := historyPath()
	if historyPath != "" {
		if f, err := os.Open(historyPath); err == nil {
			state.ReadHistory(f)
			f.Close()
		}
		defer func() {
			if f, err := os.Create(historyPath); err == nil {
				state.WriteHistory(f)
				f.Close()
			}
		}()
	}

	s := NewSession()
	for {
		prompt := "fb> "
		if s.Pending() {
			prompt = ".... "
		}
		input, err := state.Prompt(prompt)
		if err != nil {
			switch {
			case stderrors.Is(err, liner.ErrPromptAborted):
				fmt.Println()
				s.pending.Reset()
				continue
			case stderrors.Is(err, io.EOF):
				fmt.Println()
				return
			default:
				fmt.Fprintf(os.Stderr, "read error: %v\n", err)
				return
			}
		}

		if trimmed := strings.TrimSpace(input); trimmed != "" {
			state.AppendHistory(trimmed)
		}
		if s.handle(input, os.Stdout, os.Stderr) {
			return
		}
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ""
	}
	return filepath.Join(home, ".flatbasic_history")
}

func isInteractive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
