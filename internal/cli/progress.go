package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/neurotopo/trisect/pkg/graph"
	"github.com/neurotopo/trisect/pkg/pipeline"
)

// spinnerFrames are the animation frames for the progress line.
var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// frameInterval is the spinner animation speed.
const frameInterval = 80 * time.Millisecond

// progressMsg carries a search progress callback into the model.
type progressMsg struct {
	done  int
	total int
}

// searchDoneMsg carries the pipeline outcome into the model.
type searchDoneMsg struct {
	result *pipeline.Result
	err    error
}

// tickMsg advances the spinner animation.
type tickMsg time.Time

// searchModel renders a single-line spinner with percent progress while a
// search runs. It quits when the search completes or the user interrupts.
type searchModel struct {
	message string
	frame   int
	done    int
	total   int

	finished    bool
	interrupted bool
}

func newSearchModel(message string) searchModel {
	return searchModel{message: message}
}

func tickCmd() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init implements tea.Model.
func (m searchModel) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m searchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.interrupted = true
			return m, tea.Quit
		}

	case tickMsg:
		m.frame++
		return m, tickCmd()

	case progressMsg:
		m.done, m.total = msg.done, msg.total
		return m, nil

	case searchDoneMsg:
		m.finished = true
		return m, tea.Quit
	}

	return m, nil
}

// View implements tea.Model. The line clears itself once the model quits.
func (m searchModel) View() string {
	if m.finished || m.interrupted {
		return ""
	}
	frame := styleIconSpinner.Render(spinnerFrames[m.frame%len(spinnerFrames)])
	if m.total > 0 {
		pct := 100 * m.done / m.total
		return fmt.Sprintf("%s %s %s", frame, StyleDim.Render(m.message),
			StyleDim.Render(fmt.Sprintf("%d%% (%d/%d)", pct, m.done, m.total)))
	}
	return frame + " " + StyleDim.Render(m.message)
}

// runSearch executes the pipeline, animating a progress line on stderr
// unless the CLI is quiet. Interrupting the animation cancels the search.
func (c *CLI) runSearch(parent context.Context, runner *pipeline.Runner, g *graph.Dense, opts pipeline.Options, message string) (*pipeline.Result, error) {
	parent = withLogger(parent, c.Logger)

	if c.quiet {
		opts.Progress = func(done, total int) {
			loggerFromContext(parent).Debugf("scanned %d/%d candidate pairs", done, total)
		}
		return runner.Execute(parent, g, opts)
	}

	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	p := tea.NewProgram(newSearchModel(message), tea.WithOutput(os.Stderr), tea.WithContext(ctx))
	opts.Progress = func(done, total int) {
		p.Send(progressMsg{done: done, total: total})
	}

	// The search runs off the UI loop; outcome is a channel so the caller
	// never closes the runner while Execute is still writing the cache.
	outcome := make(chan searchDoneMsg, 1)
	go func() {
		result, err := runner.Execute(ctx, g, opts)
		msg := searchDoneMsg{result: result, err: err}
		outcome <- msg
		p.Send(msg)
	}()

	final, runErr := p.Run()
	if runErr != nil {
		cancel()
		<-outcome
		if parent.Err() != nil {
			return nil, parent.Err()
		}
		return nil, fmt.Errorf("progress ui: %w", runErr)
	}

	if m, ok := final.(searchModel); ok && m.interrupted {
		cancel()
		<-outcome
		return nil, context.Canceled
	}

	msg := <-outcome
	return msg.result, msg.err
}
