package tui

import (
	"fmt"

	"github.com/andy/ledgercraft/internal/app"
	"github.com/andy/ledgercraft/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// settingsMode represents the current screen mode
type settingsMode int

const (
	settingsModeView settingsMode = iota
	settingsModeCompany
)

// company form field indices
const (
	companyFieldName = iota
	companyFieldEmail
	companyFieldPhone
	companyFieldAddress
	companyFieldCount
)

// SettingsModel shows preferences and the company profile
type SettingsModel struct {
	app      *app.App
	settings domain.Settings
	company  domain.Party
	err      error

	mode       settingsMode
	fields     []textinput.Model
	fieldFocus int
	firstRun   bool
}

type settingsDataMsg struct {
	settings domain.Settings
	company  domain.Party
}

type companySavedMsg struct {
	err error
}

// NewSettingsModel creates a new settings screen model
func NewSettingsModel(a *app.App) tea.Model {
	return &SettingsModel{app: a}
}

// IsCapturingInput returns true when the company form is active
func (m *SettingsModel) IsCapturingInput() bool {
	return m.mode == settingsModeCompany
}

func (m *SettingsModel) Init() tea.Cmd {
	return m.loadSettings()
}

func (m *SettingsModel) loadSettings() tea.Cmd {
	return func() tea.Msg {
		return settingsDataMsg{
			settings: m.app.Store.Settings(),
			company:  m.app.Store.Company(),
		}
	}
}

func (m *SettingsModel) initCompanyForm() {
	m.fields = make([]textinput.Model, companyFieldCount)

	m.fields[companyFieldName] = textinput.New()
	m.fields[companyFieldName].Placeholder = "Your Company LLC"
	m.fields[companyFieldName].CharLimit = 100
	m.fields[companyFieldName].Width = 40

	m.fields[companyFieldEmail] = textinput.New()
	m.fields[companyFieldEmail].Placeholder = "billing@example.com"
	m.fields[companyFieldEmail].CharLimit = 100
	m.fields[companyFieldEmail].Width = 40

	m.fields[companyFieldPhone] = textinput.New()
	m.fields[companyFieldPhone].Placeholder = "555-0100"
	m.fields[companyFieldPhone].CharLimit = 30
	m.fields[companyFieldPhone].Width = 20

	m.fields[companyFieldAddress] = textinput.New()
	m.fields[companyFieldAddress].Placeholder = "Street, City"
	m.fields[companyFieldAddress].CharLimit = 200
	m.fields[companyFieldAddress].Width = 50

	m.fields[companyFieldName].SetValue(m.company.Name)
	m.fields[companyFieldEmail].SetValue(m.company.Email)
	m.fields[companyFieldPhone].SetValue(m.company.Phone)
	m.fields[companyFieldAddress].SetValue(m.company.Address)

	m.fieldFocus = companyFieldName
	m.fields[companyFieldName].Focus()
}

func (m *SettingsModel) submitCompanyForm() tea.Cmd {
	company := domain.Party{
		Name:    m.fields[companyFieldName].Value(),
		Email:   m.fields[companyFieldEmail].Value(),
		Phone:   m.fields[companyFieldPhone].Value(),
		Address: m.fields[companyFieldAddress].Value(),
	}
	return func() tea.Msg {
		return companySavedMsg{err: m.app.Store.SetCompany(company)}
	}
}

func (m *SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case settingsDataMsg:
		m.settings = msg.settings
		m.company = msg.company
		return m, nil

	case companySavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = settingsModeView
		m.err = nil
		m.firstRun = false
		return m, m.loadSettings()

	case OpenCompanyFormMsg:
		m.mode = settingsModeCompany
		m.firstRun = true
		m.initCompanyForm()
		return m, textinput.Blink

	case RefreshDataMsg:
		return m, m.loadSettings()

	case tea.KeyMsg:
		if m.mode == settingsModeCompany {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Edit):
			m.mode = settingsModeCompany
			m.initCompanyForm()
			return m, textinput.Blink
		case msg.String() == "a":
			if err := m.app.SetAutoSave(!m.settings.AutoSave); err != nil {
				m.err = err
				return m, nil
			}
			return m, m.loadSettings()
		}
	}

	return m, nil
}

func (m *SettingsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = settingsModeView
		m.err = nil
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + 1) % companyFieldCount
		m.fields[m.fieldFocus].Focus()
		return m, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + companyFieldCount - 1) % companyFieldCount
		m.fields[m.fieldFocus].Focus()
		return m, textinput.Blink

	case tea.KeyEnter:
		return m, m.submitCompanyForm()
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *SettingsModel) View() string {
	if m.mode == settingsModeCompany {
		return m.renderCompanyForm()
	}

	autosave := "off"
	if m.settings.AutoSave {
		autosave = "on"
	}

	s := titleStyle.Render("  Company") + "\n"
	if m.company.Name == "" {
		s += subtitleStyle.Render("  Not set up yet. Press E to add your company profile.") + "\n"
	} else {
		s += fmt.Sprintf("  %s\n", m.company.Name)
		if m.company.Email != "" {
			s += fmt.Sprintf("  %s\n", m.company.Email)
		}
		if m.company.Phone != "" {
			s += fmt.Sprintf("  %s\n", m.company.Phone)
		}
		if m.company.Address != "" {
			s += fmt.Sprintf("  %s\n", m.company.Address)
		}
	}

	s += "\n" + titleStyle.Render("  Preferences") + "\n"
	s += fmt.Sprintf("  Currency   %s (%s, %s)\n", m.settings.Currency.Symbol, m.settings.Currency.Code, m.settings.Currency.Locale)
	s += fmt.Sprintf("  Theme      %s\n", m.settings.Theme)
	s += fmt.Sprintf("  Accent     %s\n", m.settings.Accent)
	s += fmt.Sprintf("  Autosave   %s\n", autosave)
	if m.settings.Footer != "" {
		s += fmt.Sprintf("  Footer     %s\n", truncateStr(m.settings.Footer, 60))
	}

	if m.err != nil {
		s += "\n  " + lipgloss.NewStyle().Foreground(errorColor).Render(m.err.Error()) + "\n"
	}

	s += "\n  " + subtitleStyle.Render("e edit company  a toggle autosave")
	return s
}

func (m *SettingsModel) renderCompanyForm() string {
	title := "  Company Profile"
	if m.firstRun {
		title = "  Welcome! Set up your company profile"
	}

	labels := [companyFieldCount]string{"Name", "Email", "Phone", "Address"}
	s := titleStyle.Render(title) + "\n\n"
	for i, field := range m.fields {
		s += fmt.Sprintf("  %-8s %s\n", labels[i], field.View())
	}

	if m.err != nil {
		s += "\n  " + lipgloss.NewStyle().Foreground(errorColor).Render(m.err.Error()) + "\n"
	}

	s += "\n  " + subtitleStyle.Render("tab next field  enter save  esc cancel")
	return s
}
