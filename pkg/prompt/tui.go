package prompt

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/moyu-x/clean-img/pkg/logger"
)

var (
	questionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	focusedPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	textStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	hintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Faint(true)
)

type confirmModel struct {
	question string
	input    textinput.Model
	answer   string
	done     bool
	aborted  bool
}

func newConfirmModel(question string) confirmModel {
	input := textinput.New()
	input.Placeholder = "yes"
	input.Prompt = "> "
	input.PromptStyle = focusedPromptStyle
	input.TextStyle = textStyle
	input.CharLimit = 16
	input.Focus()

	return confirmModel{
		question: question,
		input:    input,
	}
}

func (m confirmModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			m.answer = m.input.Value()
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.aborted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m confirmModel) View() string {
	if m.done || m.aborted {
		return ""
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s\n",
		questionStyle.Render(m.question),
		m.input.View(),
		hintStyle.Render("输入 yes 并回车确认，Esc 取消"),
	)
}

// TUIConfirmer 使用 bubbletea 输入框进行确认
type TUIConfirmer struct {
	in  io.Reader
	out io.Writer
}

func NewTUIConfirmer(in io.Reader, out io.Writer) *TUIConfirmer {
	return &TUIConfirmer{in: in, out: out}
}

func (c *TUIConfirmer) Confirm(question string) (bool, error) {
	var opts []tea.ProgramOption
	if c.in != nil {
		opts = append(opts, tea.WithInput(c.in))
	}
	if c.out != nil {
		opts = append(opts, tea.WithOutput(c.out))
	}

	final, err := tea.NewProgram(newConfirmModel(question), opts...).Run()
	if err != nil {
		logger.Get().Error().Err(err).Msg("确认界面运行错误")
		return false, err
	}

	m, ok := final.(confirmModel)
	if !ok || m.aborted {
		return false, nil
	}
	return Accepted(m.answer), nil
}
