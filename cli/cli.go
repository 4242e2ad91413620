// cli/cli.go
// Package cli provides the interactive chat interface for the Parley application.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	openai "github.com/sashabaranov/go-openai"

	"github.com/mwiater/parley/internal/appconfig"
	"github.com/mwiater/parley/internal/rag"
	"github.com/mwiater/parley/internal/util"
)

// Config represents the shared application configuration for the CLI.
type Config = appconfig.Config

// answerer is the slice of the query engine the chat loop needs.
type answerer interface {
	Ask(ctx context.Context, question string, history []rag.Message) (rag.Answer, error)
}

// chatEntry is a single exchange shown in the transcript pane. Assistant
// entries carry the transcript files the answer cited.
type chatEntry struct {
	role    string
	content string
	sources []string
}

// model is the main application model for the Bubble Tea UI.
type model struct {
	ctx              context.Context
	config           *Config
	engine           answerer
	isLoading        bool
	err              error
	textArea         textarea.Model
	viewport         viewport.Model
	spinner          spinner.Model
	entries          []chatEntry
	width, height    int
	requestStartTime time.Time
}

// initialModel creates and initializes a new model with default values.
func initialModel(ctx context.Context, cfg *Config, engine answerer) *model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	ta := textarea.New()
	ta.Placeholder = "Ask about your transcripts..."
	ta.Focus()
	ta.Prompt = "Ask Anything: "
	ta.ShowLineNumbers = false
	ta.CharLimit = -1
	ta.SetHeight(1)
	ta.KeyMap.InsertNewline.SetEnabled(false)

	vp := viewport.New(100, 5)

	return &model{
		ctx:      ctx,
		config:   cfg,
		engine:   engine,
		spinner:  s,
		textArea: ta,
		viewport: vp,
	}
}

// answerMsg is a message sent when the query engine has produced an answer.
type answerMsg struct{ answer rag.Answer }

// answerErr is a message sent when a question could not be answered.
type answerErr struct{ error }

// tickMsg is a message sent at regular intervals, used for animations and timed updates.
type tickMsg time.Time

// askCmd creates a Bubble Tea command that sends one question through the
// query engine. The engine call blocks inside the command, so the spinner
// keeps animating while retrieval and generation run.
func askCmd(ctx context.Context, engine answerer, question string, history []rag.Message) tea.Cmd {
	return func() tea.Msg {
		log.Printf("[parley -> backend] Outgoing question: %q (history=%d)", question, len(history))
		answer, err := engine.Ask(ctx, question, history)
		if err != nil {
			return answerErr{error: err}
		}
		return answerMsg{answer: answer}
	}
}

// tickCmd creates a Bubble Tea command that sends a tickMsg at a regular interval.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init initializes the Bubble Tea model and returns a command to start the spinner animation.
func (m *model) Init() tea.Cmd {
	return m.spinner.Tick
}

// Update is the central update function for the Bubble Tea model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.textArea.SetWidth(msg.Width - 3)
		headerHeight := 3
		footerHeight := 4
		m.viewport.Width = msg.Width
		m.viewport.Height = msg.Height - headerHeight - footerHeight

	case answerMsg:
		m.entries = append(m.entries, chatEntry{
			role:    "assistant",
			content: msg.answer.Text,
			sources: msg.answer.Sources,
		})
		m.isLoading = false
		m.textArea.Focus()
		m.viewport.GotoBottom()
		return m, nil

	case answerErr:
		m.isLoading = false
		m.err = friendlyAskError(msg.error)
		m.textArea.Focus()
		return m, nil

	case tickMsg:
		if m.isLoading {
			return m, tickCmd()
		}
		return m, nil
	}

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	m.textArea, cmd = m.textArea.Update(msg)
	cmds = append(cmds, cmd)

	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" && !m.isLoading {
		question := strings.TrimSpace(m.textArea.Value())
		if question != "" {
			// The engine appends the question itself, so the replayed
			// history stops before it.
			history := m.history()
			m.entries = append(m.entries, chatEntry{role: "user", content: question})
			m.textArea.Reset()
			m.isLoading = true
			m.err = nil
			m.requestStartTime = time.Now()
			cmds = append(cmds, m.spinner.Tick, askCmd(m.ctx, m.engine, question, history), tickCmd())
		}
	}

	if m.isLoading {
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// history converts the rendered entries into the conversation form the
// query engine replays. Source annotations stay in the UI.
func (m *model) history() []rag.Message {
	msgs := make([]rag.Message, 0, len(m.entries))
	for _, e := range m.entries {
		msgs = append(msgs, rag.Message{Role: e.role, Content: e.content})
	}
	return msgs
}

// friendlyAskError rewrites engine failures into the guidance shown in the
// chat pane.
func friendlyAskError(err error) error {
	if errors.Is(err, rag.ErrEmptyIndex) {
		return errors.New("the index has no chunks yet; run 'parley index build' first")
	}
	var genErr *rag.GenerationError
	if errors.As(err, &genErr) && genErr.Retryable {
		return fmt.Errorf("the model backend did not answer, try again: %v", genErr.Err)
	}
	return err
}

// View renders the application's UI based on the current state of the model.
func (m *model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}
	return m.chatView()
}

// chatView renders the chat interface, including the header, conversation
// history, any pending error, and the input text area.
func (m *model) chatView() string {
	var builder strings.Builder

	headerStyle := lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("230")).Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Background(lipgloss.Color("0")).Foreground(lipgloss.Color("255")).Padding(0, 1)

	indexInfo := fmt.Sprintf("Index: %s", util.TruncateRunes(m.config.IndexFilePath(), 40))
	modelInfo := fmt.Sprintf("Model: %s", m.config.ChatModelName())
	topKInfo := fmt.Sprintf("TopK: %d", m.config.RetrievalTopK())

	status := lipgloss.JoinHorizontal(lipgloss.Top,
		labelStyle.Render("Config:"),
		headerStyle.Render(indexInfo),
		headerStyle.MarginLeft(1).Render(modelInfo),
		headerStyle.MarginLeft(1).Render(topKInfo),
	)

	help := lipgloss.NewStyle().Render(" (esc to quit)")
	builder.WriteString(status + help + "\n\n")

	var historyBuilder strings.Builder
	userStyle := lipgloss.NewStyle().Bold(true)
	assistantStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("5"))
	sourceStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))

	for _, entry := range m.entries {
		var role string
		if entry.role == "assistant" {
			role = assistantStyle.Render("Assistant: ")
		} else {
			role = userStyle.Render("You: ")
		}
		wrappedContent := lipgloss.NewStyle().Width(m.width - lipgloss.Width(role) - 2).Render(entry.content)
		historyBuilder.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, role, wrappedContent) + "\n")
		if len(entry.sources) > 0 {
			line := "Sources: " + strings.Join(entry.sources, ", ")
			historyBuilder.WriteString(sourceStyle.Render(util.TruncateToWidth(line, m.width-2)) + "\n")
		}
	}

	m.viewport.SetContent(historyBuilder.String())
	builder.WriteString(m.viewport.View())

	if m.err != nil {
		errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		builder.WriteString("\n" + errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	if m.isLoading {
		timer := fmt.Sprintf("%.1f", time.Since(m.requestStartTime).Seconds())
		loadingText := fmt.Sprintf(" Assistant is thinking... %ss", timer)
		builder.WriteString("\n" + m.spinner.View() + loadingText)
	} else {
		builder.WriteString("\n" + m.textArea.View())
	}

	return builder.String()
}

// StartGUI initializes and runs the interactive transcript chat.
func StartGUI(ctx context.Context, cfg *appconfig.Config, cancel context.CancelFunc) {
	if cfg == nil {
		log.Fatalf("Failed to start: configuration is not loaded")
	}

	f, err := tea.LogToFile(cfg.LogFilePath(), "debug")
	if err != nil {
		log.Fatalf("could not open log file: %v", err)
	}
	defer f.Close()
	defer func() {
		log.Println("Cancelling all running requests...")
		cancel()
	}()

	key := os.Getenv("OPENAI_API_KEY")
	if key == "" {
		log.Fatalf("Failed to start: OPENAI_API_KEY is not set")
	}
	client := openai.NewClient(key)

	index, err := rag.Open(cfg.IndexFilePath())
	if err != nil {
		log.Fatalf("Failed to open index: %v", err)
	}
	defer index.Close()

	engine := rag.NewEngine(
		index,
		rag.NewOpenAIEmbedder(client, cfg.EmbeddingModelName()),
		rag.NewOpenAIChat(client, cfg.ChatModelName()),
		cfg.RetrievalTopK(),
		cfg.ChatHistoryLimit(),
		cfg.ContextTokenBudget(),
	)

	m := initialModel(ctx, cfg, engine)

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running program: %v", err)
	}
}
