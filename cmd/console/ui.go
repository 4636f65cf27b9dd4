package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/vanyalambert/New-Harry-Potter/pkg/chat"
)

const PlaceHolderText = "go to library / inspect shimmer / talk to draco: ..."

// ConsoleUI is the BubbleTea model that runs the UI.
// https://github.com/charmbracelet/bubbletea
type ConsoleUI struct {
	config       *ConsoleConfig
	client       *http.Client
	session      *SessionResponse
	chatViewport viewport.Model
	metaViewport viewport.Model
	textarea     textarea.Model
	ready        bool
	width        int
	height       int
	err          error
	loading      bool
}

type actionResponseMsg struct {
	response *chat.ActionResponse
	err      error
}

var (
	chatPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(1).
			PaddingLeft(3).
			PaddingRight(0)

	metaPanelStyle = lipgloss.NewStyle().
			PaddingTop(2).
			PaddingBottom(0).
			PaddingLeft(0).
			PaddingRight(2)

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")). // pink
			Bold(true)

	narratorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("86")) // green

	userStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")) // teal

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")) // red

	loadingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")) // yellow

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")) // dark grey

	// Speaker name styles keyed by the API's avatar tags.
	avatarStyles = map[string]lipgloss.Style{
		"purple": lipgloss.NewStyle().Foreground(lipgloss.Color("135")).Bold(true),
		"green":  lipgloss.NewStyle().Foreground(lipgloss.Color("77")).Bold(true),
		"brown":  lipgloss.NewStyle().Foreground(lipgloss.Color("137")).Bold(true),
		"blue":   lipgloss.NewStyle().Foreground(lipgloss.Color("39")).Bold(true),
	}
)

func NewConsoleUI(cfg *ConsoleConfig, client *http.Client, session *SessionResponse) ConsoleUI {
	ta := textarea.New()
	ta.Placeholder = PlaceHolderText
	ta.Focus()
	ta.Prompt = promptStyle.Render(":: ")
	ta.CharLimit = 500
	ta.SetWidth(50)
	ta.SetHeight(1)
	ta.ShowLineNumbers = false

	chatVp := viewport.New(50, 20)
	chatVp.MouseWheelEnabled = true

	metaVp := viewport.New(24, 20)

	return ConsoleUI{
		config:       cfg,
		client:       client,
		session:      session,
		textarea:     ta,
		chatViewport: chatVp,
		metaViewport: metaVp,
	}
}

func (m ConsoleUI) Init() tea.Cmd {
	return textarea.Blink
}

func (m ConsoleUI) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		m.ready = true

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			text := strings.TrimSpace(m.textarea.Value())
			if text == "" || m.loading {
				return m, nil
			}
			m.textarea.Reset()
			m.loading = true
			m.err = nil
			m.writeChatContent()
			return m, m.submitAction(text)
		}

	case actionResponseMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
		} else {
			m.session.State = msg.response.State
		}
		m.writeChatContent()
		m.writeMetadata()
	}

	m.textarea, tiCmd = m.textarea.Update(msg)
	m.chatViewport, vpCmd = m.chatViewport.Update(msg)

	return m, tea.Batch(tiCmd, vpCmd)
}

func (m ConsoleUI) View() string {
	if !m.ready {
		return "Loading..."
	}

	chatPanel := chatPanelStyle.Render(m.chatViewport.View())
	metaPanel := metaPanelStyle.Render(m.metaViewport.View())
	panels := lipgloss.JoinHorizontal(lipgloss.Top, chatPanel, metaPanel)

	status := ""
	if m.err != nil {
		status = errorStyle.Render("Error: " + m.err.Error())
	}

	return fmt.Sprintf("%s\n%s\n%s", panels, m.textarea.View(), status)
}

func (m *ConsoleUI) layout() {
	metaWidth := 28
	chatWidth := m.width - metaWidth
	if chatWidth < 30 {
		chatWidth = m.width
		metaWidth = 0
	}

	panelHeight := m.height - 5

	m.chatViewport.Width = chatWidth
	m.chatViewport.Height = panelHeight
	m.metaViewport.Width = metaWidth
	m.metaViewport.Height = panelHeight
	m.textarea.SetWidth(m.width - 4)

	m.writeChatContent()
	m.writeMetadata()
}

func (m *ConsoleUI) submitAction(text string) tea.Cmd {
	return func() tea.Msg {
		resp, err := sendAction(m.client, m.config.APIBaseURL, m.session.SessionID, text)
		return actionResponseMsg{response: resp, err: err}
	}
}

// writeChatContent rebuilds the chat viewport from the session timeline.
func (m *ConsoleUI) writeChatContent() {
	chatWidth := m.chatViewport.Width - 6
	if chatWidth < 20 {
		chatWidth = 20
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("MYSTERY AT THE CASTLE") + "\n\n")
	content.WriteString("Move, inspect, and question the suspects to solve the case.\n\n")
	content.WriteString(separatorStyle.Render(strings.Repeat("─", chatWidth)) + "\n\n")

	if m.session.State != nil {
		for _, msg := range m.session.State.Timeline {
			content.WriteString(formatMessage(msg, chatWidth) + "\n\n")
		}
	}

	if m.loading {
		content.WriteString(loadingStyle.Render("...") + "\n")
	}

	m.chatViewport.SetContent(content.String())
	m.chatViewport.GotoBottom()
}

func formatMessage(msg chat.Message, width int) string {
	style, ok := avatarStyles[msg.Avatar]
	if !ok {
		style = narratorStyle
	}

	speaker := style.Render(msg.Speaker + ":")
	body := wordwrap.String(msg.Text, width)
	if msg.Speaker == "You" {
		body = userStyle.Render(body)
	}
	return speaker + "\n" + body
}

// writeMetadata rebuilds the investigation sidebar.
func (m *ConsoleUI) writeMetadata() {
	state := m.session.State
	if state == nil {
		return
	}

	var content strings.Builder
	content.WriteString(titleStyle.Render("CASE FILE") + "\n\n")

	content.WriteString("Location:\n")
	content.WriteString(state.Location + "\n\n")

	content.WriteString(fmt.Sprintf("Clues found: %d\n\n", state.CluesFound))

	content.WriteString("Evidence:\n")
	if len(state.Evidence) == 0 {
		content.WriteString("None yet\n")
	} else {
		width := m.metaViewport.Width - 4
		if width < 12 {
			width = 12
		}
		for _, e := range state.Evidence {
			content.WriteString(wordwrap.String("• "+e, width) + "\n")
		}
	}
	content.WriteString("\n")

	if len(state.EvidenceAgainst) > 0 {
		content.WriteString("Suspicion:\n")
		for suspect, count := range state.EvidenceAgainst {
			content.WriteString(fmt.Sprintf("• %s: %d\n", suspect, count))
		}
		content.WriteString("\n")
	}

	content.WriteString("Commands:\n")
	content.WriteString("• Ctrl+C: Quit\n")
	content.WriteString("• Enter: Send\n")

	m.metaViewport.SetContent(content.String())
}
