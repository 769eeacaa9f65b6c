package output

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	currentBranchStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("6")).Bold(true)
	branchStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	headerStyle        = lipgloss.NewStyle().Bold(true).Underline(true)
	untrackedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	modifiedStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	addedStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	dimStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	failureStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
)

// FileState identifies which status listing a path came from.
type FileState int

const (
	StateUntracked FileState = iota
	StateModified
	StateAdded
)

var stateMarkers = map[FileState]string{
	StateUntracked: "??",
	StateModified:  " M",
	StateAdded:     "A ",
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsInteractive reports whether both stdin and stdout are terminals.
func IsInteractive() bool {
	return IsTerminal(os.Stdin) && IsTerminal(os.Stdout)
}

// Styler renders CLI listings. Styling is applied only when enabled, so
// piped output stays plain.
type Styler struct {
	enabled bool
}

// NewStyler enables styling when w is a terminal.
func NewStyler(w io.Writer) *Styler {
	f, ok := w.(*os.File)
	return &Styler{enabled: ok && IsTerminal(f)}
}

// NewPlainStyler returns a Styler that never styles.
func NewPlainStyler() *Styler {
	return &Styler{}
}

func (s *Styler) render(style lipgloss.Style, text string) string {
	if !s.enabled {
		return text
	}
	return style.Render(text)
}

// Branch renders a branch list entry, marking the checked out branch.
func (s *Styler) Branch(name string, current bool) string {
	if current {
		return "* " + s.render(currentBranchStyle, name)
	}
	return "  " + s.render(branchStyle, name)
}

// File renders a status entry prefixed with its porcelain marker.
func (s *Styler) File(state FileState, path string) string {
	line := stateMarkers[state] + " " + path
	switch state {
	case StateUntracked:
		return s.render(untrackedStyle, line)
	case StateModified:
		return s.render(modifiedStyle, line)
	default:
		return s.render(addedStyle, line)
	}
}

// Header renders a section heading.
func (s *Styler) Header(text string) string {
	return s.render(headerStyle, text)
}

// Dim renders secondary information.
func (s *Styler) Dim(text string) string {
	return s.render(dimStyle, text)
}

// Failure renders an error line.
func (s *Styler) Failure(text string) string {
	return s.render(failureStyle, text)
}
