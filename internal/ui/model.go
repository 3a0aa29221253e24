package ui

import (
	"fmt"
	"os"
	"strings"

	"github.com/nconklindev/catalogfmt/internal/converter"
	"github.com/nconklindev/catalogfmt/internal/prompt"
	"github.com/nconklindev/catalogfmt/internal/types"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type state int

const (
	statePathInput state = iota
	stateFilePicker
	stateProcessing
	stateComplete
	stateError
)

type Model struct {
	state        state
	converter    *converter.Converter
	input        textinput.Model
	filepicker   filepicker.Model
	selectedFile string
	result       *types.ConversionResult
	err          error
	width        int
	height       int
	progress     progress.Model
	progressChan chan float64
	resultChan   chan conversionResultMsg
}

type conversionResultMsg struct {
	result *types.ConversionResult
	err    error
}

type conversionCompleteMsg struct {
	result *types.ConversionResult
	err    error
}

type progressMsg float64

type waitForProgressMsg struct{}

func InitialModel(conv *converter.Converter) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "/path/to/supplier.xlsx"
	ti.CharLimit = 1024
	ti.Width = 60
	ti.PromptStyle = lipgloss.NewStyle().Foreground(accentColor)
	ti.Focus()

	fp := filepicker.New()
	fp.AllowedTypes = []string{".csv", ".xlsx", ".CSV", ".XLSX"}
	fp.CurrentDirectory, _ = os.Getwd()

	// Set filepicker colors to match theme
	fp.Styles.Cursor = lipgloss.NewStyle().Foreground(accentColor)
	fp.Styles.Symlink = lipgloss.NewStyle().Foreground(softColor)
	fp.Styles.Directory = lipgloss.NewStyle().Foreground(softColor)
	fp.Styles.File = lipgloss.NewStyle().Foreground(textColor)
	fp.Styles.Permission = lipgloss.NewStyle().Foreground(mutedColor)
	fp.Styles.Selected = lipgloss.NewStyle().Foreground(accentColor).Bold(true)
	fp.Styles.FileSize = lipgloss.NewStyle().Foreground(mutedColor)

	prog := progress.New(progress.WithGradient("#2BB3A3", "#7FD8CB"))

	return Model{
		state:      statePathInput,
		converter:  conv,
		input:      ti,
		filepicker: fp,
		progress:   prog,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		// Subtract space for title, subtitle, help text, and padding
		height := msg.Height - 14
		if height < 5 {
			height = 5
		}
		m.filepicker.Height = height

		if msg.Width > 10 {
			m.input.Width = msg.Width - 10
		}
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case statePathInput:
			switch msg.String() {
			case "ctrl+c", "esc":
				return m, tea.Quit
			case "tab":
				m.state = stateFilePicker
				m.input.Blur()
				return m, m.filepicker.Init()
			case "enter":
				path := prompt.CleanPath(m.input.Value())
				if path == "" {
					return m, nil
				}
				m.selectedFile = path
				m.state = stateProcessing
				return m.convertFile()
			}

		case stateFilePicker:
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "tab":
				m.state = statePathInput
				return m, m.input.Focus()
			}

		case stateComplete, stateError:
			switch msg.String() {
			case "ctrl+c", "q", "enter", "esc":
				return m, tea.Quit
			}
		}

	case conversionCompleteMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateError
			return m, nil
		}
		m.result = msg.result
		m.state = stateComplete
		return m, nil

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		return m, cmd

	case progressMsg:
		if m.state == stateProcessing {
			cmd := m.progress.SetPercent(float64(msg))
			return m, tea.Batch(cmd, waitForProgress(m.progressChan, m.resultChan))
		}
		return m, nil

	case waitForProgressMsg:
		return m, waitForProgress(m.progressChan, m.resultChan)
	}

	switch m.state {
	case statePathInput:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd

	case stateFilePicker:
		var cmd tea.Cmd
		m.filepicker, cmd = m.filepicker.Update(msg)

		if didSelect, path := m.filepicker.DidSelectFile(msg); didSelect {
			m.selectedFile = path
			m.input.SetValue(path)
			m.state = stateProcessing
			return m.convertFile()
		}

		return m, cmd
	}

	return m, nil
}

func (m Model) convertFile() (Model, tea.Cmd) {
	m.progressChan = make(chan float64, 100)
	m.resultChan = make(chan conversionResultMsg, 1)

	// Capture for the goroutine
	progressChan := m.progressChan
	resultChan := m.resultChan
	selectedFile := m.selectedFile
	conv := m.converter

	cmd := tea.Batch(
		func() tea.Msg {
			go func() {
				result, err := conv.Convert(selectedFile, progressChan)

				resultChan <- conversionResultMsg{result: result, err: err}

				close(progressChan)
				close(resultChan)
			}()

			return waitForProgressMsg{}
		},
		m.progress.Init(),
	)

	return m, cmd
}

func waitForProgress(progressChan chan float64, resultChan chan conversionResultMsg) tea.Cmd {
	return func() tea.Msg {
		if progressChan == nil {
			return nil
		}

		p, ok := <-progressChan
		if !ok {
			// Progress channel closed, check result
			res, ok := <-resultChan
			if ok {
				return conversionCompleteMsg(res)
			}
			return nil
		}

		return progressMsg(p)
	}
}

func (m Model) View() string {
	switch m.state {
	case statePathInput:
		return m.viewPathInput()
	case stateFilePicker:
		return m.viewFilePicker()
	case stateProcessing:
		return m.viewProcessing()
	case stateComplete:
		return m.viewComplete()
	case stateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewPathInput() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("카탈로그 형식 변환"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render(strings.TrimSpace(prompt.Question)))
	s.WriteString("\n\n")
	s.WriteString(m.input.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("enter: 변환 • tab: 파일 선택 • esc: 종료"))

	return s.String()
}

func (m Model) viewFilePicker() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("카탈로그 형식 변환"))
	s.WriteString("\n")
	s.WriteString(SubtitleStyle.Render("변환할 .xlsx 또는 .csv 파일을 선택하세요"))
	s.WriteString("\n\n")
	s.WriteString(m.filepicker.View())
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("tab: 경로 입력 • q: 종료"))

	return s.String()
}

func (m Model) viewProcessing() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("변환 중..."))
	s.WriteString("\n\n")
	s.WriteString(m.selectedFile)
	s.WriteString("\n\n")
	s.WriteString(m.progress.View())

	return BoxStyle.Render(s.String())
}

func (m Model) viewComplete() string {
	var s strings.Builder

	s.WriteString(TitleStyle.Render("✓ 변환 완료"))
	s.WriteString("\n\n")

	// Truncate paths if they're too long
	maxPathLen := m.width - 20
	if maxPathLen < 30 {
		maxPathLen = 30
	}

	s.WriteString(LabelStyle.Render("입력: "))
	s.WriteString(truncatePath(m.result.InputFile, maxPathLen))
	s.WriteString("\n")
	s.WriteString(LabelStyle.Render("출력: "))
	s.WriteString(SuccessStyle.Render(truncatePath(m.result.OutputFile, maxPathLen)))
	s.WriteString("\n\n")
	s.WriteString(converter.HeaderMessage(m.result.HeaderRow - 1))
	s.WriteString("\n")
	s.WriteString(fmt.Sprintf("사용된 열: %s\n", columnList(m.result.ColumnsFound)))
	if len(m.result.ColumnsMissing) > 0 {
		s.WriteString(WarningStyle.Render(fmt.Sprintf("찾지 못한 열: %s", columnList(m.result.ColumnsMissing))))
		s.WriteString("\n")
	}
	s.WriteString(fmt.Sprintf("변환된 행: %d\n", m.result.RowsProcessed))
	s.WriteString("\n")
	s.WriteString(HelpStyle.Render("enter/q: 종료"))

	return BoxStyle.Render(s.String())
}

func (m Model) viewError() string {
	var s strings.Builder

	s.WriteString(ErrorStyle.Render("✗ 오류"))
	s.WriteString("\n\n")
	s.WriteString(prompt.ErrorMessage(m.err))
	s.WriteString("\n\n")
	s.WriteString(HelpStyle.Render("enter/q: 종료"))

	return BoxStyle.Render(s.String())
}

func truncatePath(path string, maxLen int) string {
	runes := []rune(path)
	if len(runes) <= maxLen {
		return path
	}
	return "..." + string(runes[len(runes)-maxLen+3:])
}

func columnList(cols []string) string {
	if len(cols) == 0 {
		return "-"
	}
	return prompt.JoinColumns(cols)
}
