package console

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/hacheck/hacheck/pkg/logger"
	"github.com/hacheck/hacheck/pkg/tty"
)

var spinnerLog = logger.New("console:spinner")

// updateMessageMsg replaces the text shown next to the spinner.
type updateMessageMsg string

// spinnerModel is the Bubble Tea model behind SpinnerWrapper. The program
// runs without a renderer; frames are written to output on each tick.
type spinnerModel struct {
	spinner spinner.Model
	message string
	output  io.Writer
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case updateMessageMsg:
		m.message = string(msg)
		m.render()
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		m.render()
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	return ""
}

func (m spinnerModel) render() {
	if m.output == nil {
		return
	}
	fmt.Fprintf(m.output, "\r\033[K%s %s", m.spinner.View(), m.message)
}

// SpinnerWrapper shows an animated spinner on stderr while work is running.
// It is a no-op when stderr is not a terminal or accessible mode is on.
type SpinnerWrapper struct {
	mu      sync.Mutex
	wg      sync.WaitGroup
	program *tea.Program
	message string
	enabled bool
	running bool
}

// NewSpinner creates a stopped spinner showing message.
func NewSpinner(message string) *SpinnerWrapper {
	enabled := tty.IsStderrTerminal() && !IsAccessibleMode()
	spinnerLog.Printf("Creating spinner: enabled=%v", enabled)
	return &SpinnerWrapper{message: message, enabled: enabled}
}

// IsEnabled reports whether the spinner draws anything.
func (s *SpinnerWrapper) IsEnabled() bool {
	return s.enabled
}

// Start begins the animation. Starting a running spinner does nothing.
func (s *SpinnerWrapper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.enabled || s.running {
		return
	}

	model := spinnerModel{
		spinner: spinner.New(
			spinner.WithSpinner(spinner.Dot),
			spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#8E44AD", Dark: "#BD93F9"})),
		),
		message: s.message,
		output:  os.Stderr,
	}
	s.program = tea.NewProgram(model, tea.WithOutput(os.Stderr), tea.WithInput(nil), tea.WithoutRenderer(), tea.WithoutSignalHandler())
	s.running = true
	s.wg.Add(1)
	go func(p *tea.Program) {
		defer s.wg.Done()
		if _, err := p.Run(); err != nil {
			spinnerLog.Printf("Spinner program exited with error: %v", err)
		}
	}(s.program)
}

// Stop ends the animation and clears the spinner line.
func (s *SpinnerWrapper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.program.Quit()
	s.wg.Wait()
	s.running = false
	s.program = nil
	fmt.Fprint(os.Stderr, "\r\033[K")
}

// StopWithMessage stops the spinner and prints message on its own line.
func (s *SpinnerWrapper) StopWithMessage(message string) {
	s.Stop()
	if s.enabled {
		fmt.Fprintln(os.Stderr, message)
	}
}

// UpdateMessage changes the text shown next to the spinner.
func (s *SpinnerWrapper) UpdateMessage(message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.message = message
	if s.running {
		s.program.Send(updateMessageMsg(message))
	}
}
