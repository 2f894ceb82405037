package progress

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	bprogress "github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/coder/quartz"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	countStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	failStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

type updateMsg struct{ done int }

type finishMsg struct {
	done int
	err  error
}

// tuiModel is the bubbletea model behind TUIReporter.
type tuiModel struct {
	bar      bprogress.Model
	clock    quartz.Clock
	total    int
	done     int
	start    time.Time
	finished bool
	err      error
}

func newTUIModel(total int, clock quartz.Clock) tuiModel {
	return tuiModel{
		bar:   bprogress.New(bprogress.WithDefaultGradient(), bprogress.WithWidth(50)),
		clock: clock,
		total: total,
		start: clock.Now(),
	}
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMsg:
		m.done = msg.done
	case finishMsg:
		m.done = msg.done
		m.err = msg.err
		m.finished = true
		return m, tea.Quit
	case tea.WindowSizeMsg:
		m.bar.Width = min(max(msg.Width-30, 10), 80)
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("checking hands"))
	b.WriteString("\n")
	b.WriteString(m.bar.ViewAs(percent(m.done, m.total) / 100))
	b.WriteString(" ")
	elapsed := m.clock.Since(m.start)
	b.WriteString(countStyle.Render(fmt.Sprintf("%d/%d  %.0f/s", m.done, m.total, rate(m.done, elapsed))))
	b.WriteString("\n")
	if m.finished {
		if m.err != nil {
			b.WriteString(failStyle.Render("✗ " + m.err.Error()))
		} else {
			b.WriteString(okStyle.Render(fmt.Sprintf("✓ all %d hands pass", m.done)))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// TUIReporter renders a bubbletea progress bar. The program runs on its own
// goroutine between Start and Finish.
type TUIReporter struct {
	w       io.Writer
	clock   quartz.Clock
	program *tea.Program
	wg      sync.WaitGroup
}

// NewTUIReporter creates a TUI reporter drawing to w
func NewTUIReporter(w io.Writer, clock quartz.Clock) *TUIReporter {
	return &TUIReporter{w: w, clock: clock}
}

func (r *TUIReporter) Start(total int) {
	r.program = tea.NewProgram(newTUIModel(total, r.clock),
		tea.WithOutput(r.w),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		_, _ = r.program.Run() // Render failures leave the check itself unaffected
	}()
}

func (r *TUIReporter) Update(done int) {
	if r.program != nil {
		r.program.Send(updateMsg{done: done})
	}
}

func (r *TUIReporter) Finish(done int, err error) {
	if r.program == nil {
		return
	}
	r.program.Send(finishMsg{done: done, err: err})
	r.wg.Wait()
}
