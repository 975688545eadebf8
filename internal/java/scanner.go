package java

import (
	"context"
	"fmt"
	"io"
	"strings"

	"jvscan/internal/theme"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const candidateWidth = 60

var faint = theme.Faint.Render

type progressMsg Progress

type scanFinishedMsg struct{}

type scannerModel struct {
	spinner     spinner.Model
	bar         progress.Model
	current     Progress
	quitting    bool
	interrupted bool
}

func newScannerModel() scannerModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = theme.SpinnerStyle

	return scannerModel{
		spinner: s,
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(40),
			progress.WithoutPercentage(),
		),
	}
}

func (m scannerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m scannerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.interrupted = true
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil

	case progressMsg:
		m.current = Progress(msg)
		return m, nil

	case scanFinishedMsg:
		m.quitting = true
		return m, tea.Quit

	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
}

func (m scannerModel) View() string {
	if m.quitting {
		return ""
	}

	if m.current.Phase == PhaseLocating {
		return fmt.Sprintf(" %s Looking for Java installations...\n", m.spinner.View())
	}

	percent := 0.0
	if m.current.Total > 0 {
		percent = float64(m.current.Done) / float64(m.current.Total)
	}

	var b strings.Builder
	fmt.Fprintf(&b, " %s Probing %s %d/%d %s\n",
		m.spinner.View(),
		m.bar.ViewAs(percent),
		m.current.Done,
		m.current.Total,
		faint(fmt.Sprintf("(%d found)", m.current.Found)))
	if m.current.Candidate != "" {
		b.WriteString("   " + faint(truncateLeft(m.current.Candidate, candidateWidth)) + "\n")
	}
	return b.String()
}

// Scanner shows discovery progress in the terminal
type Scanner struct {
	program *tea.Program
}

// NewScanner creates a scanner drawing to out
func NewScanner(out io.Writer, opts ...tea.ProgramOption) *Scanner {
	opts = append([]tea.ProgramOption{tea.WithOutput(out)}, opts...)
	return &Scanner{
		program: tea.NewProgram(newScannerModel(), opts...),
	}
}

// Report forwards discovery progress to the display. Pass it to WithProgress.
func (s *Scanner) Report(p Progress) {
	s.program.Send(progressMsg(p))
}

// Run runs fn while the progress display is shown. Pressing ctrl+c cancels
// the context handed to fn and makes Run report interrupted; Run still waits
// for fn to return.
func (s *Scanner) Run(ctx context.Context, fn func(ctx context.Context)) (interrupted bool, err error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		fn(ctx)
		s.program.Send(scanFinishedMsg{})
	}()

	final, err := s.program.Run()
	cancel()
	<-done

	if m, ok := final.(scannerModel); ok {
		interrupted = m.interrupted
	}
	return interrupted, err
}

// truncateLeft keeps the end of long paths, which is the informative part
func truncateLeft(s string, width int) string {
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	return "…" + string(r[len(r)-width+1:])
}
