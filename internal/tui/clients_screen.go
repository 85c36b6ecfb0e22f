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

// clientMode represents the current screen mode
type clientMode int

const (
	clientModeList clientMode = iota
	clientModeNew
	clientModeEdit
)

// form field indices
const (
	clientFieldName = iota
	clientFieldEmail
	clientFieldPhone
	clientFieldAddress
	clientFieldCount
)

// ClientsModel displays a navigable list of clients with create/edit forms
type ClientsModel struct {
	app       *app.App
	clients   []*domain.Client
	cursor    int
	err       error
	statusMsg string

	// Form state
	mode       clientMode
	fields     []textinput.Model
	fieldFocus int
	editingID  string // empty for new client
}

type clientsDataMsg struct {
	clients []*domain.Client
}

type clientSavedMsg struct {
	name string
	err  error
}

// NewClientsModel creates a new clients screen model
func NewClientsModel(a *app.App) tea.Model {
	return &ClientsModel{app: a}
}

// IsCapturingInput returns true when the form is active
func (m *ClientsModel) IsCapturingInput() bool {
	return m.mode == clientModeNew || m.mode == clientModeEdit
}

func (m *ClientsModel) Init() tea.Cmd {
	return m.loadClients()
}

func (m *ClientsModel) loadClients() tea.Cmd {
	return func() tea.Msg {
		return clientsDataMsg{clients: m.app.Store.ListClients()}
	}
}

func (m *ClientsModel) initForm(editing *domain.Client) {
	m.fields = make([]textinput.Model, clientFieldCount)

	m.fields[clientFieldName] = textinput.New()
	m.fields[clientFieldName].Placeholder = "Client name"
	m.fields[clientFieldName].CharLimit = 100
	m.fields[clientFieldName].Width = 40

	m.fields[clientFieldEmail] = textinput.New()
	m.fields[clientFieldEmail].Placeholder = "email@example.com"
	m.fields[clientFieldEmail].CharLimit = 100
	m.fields[clientFieldEmail].Width = 40

	m.fields[clientFieldPhone] = textinput.New()
	m.fields[clientFieldPhone].Placeholder = "555-0100"
	m.fields[clientFieldPhone].CharLimit = 30
	m.fields[clientFieldPhone].Width = 20

	m.fields[clientFieldAddress] = textinput.New()
	m.fields[clientFieldAddress].Placeholder = "Street, City"
	m.fields[clientFieldAddress].CharLimit = 200
	m.fields[clientFieldAddress].Width = 50

	// Pre-fill for editing
	if editing != nil {
		m.fields[clientFieldName].SetValue(editing.Name)
		m.fields[clientFieldEmail].SetValue(editing.Email)
		m.fields[clientFieldPhone].SetValue(editing.Phone)
		m.fields[clientFieldAddress].SetValue(editing.Address)
		m.editingID = editing.ID
	} else {
		m.editingID = ""
	}

	m.fieldFocus = clientFieldName
	m.fields[clientFieldName].Focus()
}

func (m *ClientsModel) submitForm() tea.Cmd {
	name := m.fields[clientFieldName].Value()
	email := m.fields[clientFieldEmail].Value()
	phone := m.fields[clientFieldPhone].Value()
	address := m.fields[clientFieldAddress].Value()
	editingID := m.editingID

	return func() tea.Msg {
		if editingID != "" {
			err := m.app.Store.UpdateClient(editingID, name, email, phone, address)
			return clientSavedMsg{name: name, err: err}
		}
		_, err := m.app.Store.AddClient(name, email, phone, address)
		return clientSavedMsg{name: name, err: err}
	}
}

func (m *ClientsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case clientsDataMsg:
		m.clients = msg.clients
		if m.cursor >= len(m.clients) {
			m.cursor = 0
		}
		return m, nil

	case clientSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = clientModeList
		m.err = nil
		m.statusMsg = fmt.Sprintf("Saved %s", msg.name)
		return m, m.loadClients()

	case RefreshDataMsg:
		return m, m.loadClients()

	case tea.KeyMsg:
		if m.mode == clientModeNew || m.mode == clientModeEdit {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.clients)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = clientModeNew
			m.initForm(nil)
			return m, textinput.Blink
		case key.Matches(msg, DefaultKeyMap.Edit):
			if len(m.clients) > 0 {
				m.mode = clientModeEdit
				m.initForm(m.clients[m.cursor])
				return m, textinput.Blink
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.clients) > 0 {
				client := m.clients[m.cursor]
				if err := m.app.Store.UseClient(client.ID); err != nil {
					m.err = err
					return m, nil
				}
				m.statusMsg = fmt.Sprintf("Billing %s on the current invoice", client.Name)
			}
		}
	}

	return m, nil
}

func (m *ClientsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = clientModeList
		m.err = nil
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + 1) % clientFieldCount
		m.fields[m.fieldFocus].Focus()
		return m, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + clientFieldCount - 1) % clientFieldCount
		m.fields[m.fieldFocus].Focus()
		return m, textinput.Blink

	case tea.KeyEnter:
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ClientsModel) View() string {
	if m.mode == clientModeNew || m.mode == clientModeEdit {
		return m.renderForm()
	}

	var s string
	if len(m.clients) == 0 {
		s += subtitleStyle.Render("  No clients yet. Press N to add one.") + "\n"
	} else {
		s += fmt.Sprintf("  %-24s %-28s %-16s %s\n", "Name", "Email", "Phone", "Last Used")
		for i, client := range m.clients {
			lastUsed := "-"
			if !client.LastUsed.IsZero() {
				lastUsed = client.LastUsed.Format("2006-01-02")
			}
			line := fmt.Sprintf("%-24s %-28s %-16s %s",
				truncateStr(client.Name, 24),
				truncateStr(client.Email, 28),
				truncateStr(client.Phone, 16),
				lastUsed,
			)
			if i == m.cursor {
				s += "  " + selectedStyle.Render(line) + "\n"
			} else {
				s += "  " + line + "\n"
			}
		}
	}

	if m.statusMsg != "" {
		s += "\n  " + subtitleStyle.Render(m.statusMsg) + "\n"
	}
	if m.err != nil {
		s += "\n  " + lipgloss.NewStyle().Foreground(errorColor).Render(m.err.Error()) + "\n"
	}

	s += "\n  " + subtitleStyle.Render("n new  e edit  enter bill on current invoice")
	return s
}

func (m *ClientsModel) renderForm() string {
	title := "  New Client"
	if m.mode == clientModeEdit {
		title = "  Edit Client"
	}

	labels := [clientFieldCount]string{"Name", "Email", "Phone", "Address"}
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
