package tui

import (
	"fmt"
	"strconv"

	"github.com/andy/ledgercraft/internal/app"
	"github.com/andy/ledgercraft/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// productMode represents the current screen mode
type productMode int

const (
	productModeList productMode = iota
	productModeNew
	productModeEdit
)

// form field indices
const (
	productFieldName = iota
	productFieldRate
	productFieldDescription
	productFieldCount
)

// ProductsModel displays the product catalog with create/edit forms
type ProductsModel struct {
	app       *app.App
	products  []*domain.Product
	cursor    int
	symbol    string
	err       error
	statusMsg string

	// Form state
	mode       productMode
	fields     []textinput.Model
	fieldFocus int
	editingID  string
}

type productsDataMsg struct {
	products []*domain.Product
	symbol   string
}

type productSavedMsg struct {
	name string
	err  error
}

// NewProductsModel creates a new products screen model
func NewProductsModel(a *app.App) tea.Model {
	return &ProductsModel{app: a}
}

// IsCapturingInput returns true when the form is active
func (m *ProductsModel) IsCapturingInput() bool {
	return m.mode == productModeNew || m.mode == productModeEdit
}

func (m *ProductsModel) Init() tea.Cmd {
	return m.loadProducts()
}

func (m *ProductsModel) loadProducts() tea.Cmd {
	return func() tea.Msg {
		return productsDataMsg{
			products: m.app.Store.ListProducts(),
			symbol:   m.app.Store.Settings().Currency.Symbol,
		}
	}
}

func (m *ProductsModel) initForm(editing *domain.Product) {
	m.fields = make([]textinput.Model, productFieldCount)

	m.fields[productFieldName] = textinput.New()
	m.fields[productFieldName].Placeholder = "Service or product name"
	m.fields[productFieldName].CharLimit = 100
	m.fields[productFieldName].Width = 40

	m.fields[productFieldRate] = textinput.New()
	m.fields[productFieldRate].Placeholder = "150.00"
	m.fields[productFieldRate].CharLimit = 10
	m.fields[productFieldRate].Width = 15

	m.fields[productFieldDescription] = textinput.New()
	m.fields[productFieldDescription].Placeholder = "Optional description"
	m.fields[productFieldDescription].CharLimit = 200
	m.fields[productFieldDescription].Width = 50

	if editing != nil {
		m.fields[productFieldName].SetValue(editing.Name)
		m.fields[productFieldRate].SetValue(strconv.FormatFloat(editing.Rate, 'f', -1, 64))
		m.fields[productFieldDescription].SetValue(editing.Description)
		m.editingID = editing.ID
	} else {
		m.editingID = ""
	}

	m.fieldFocus = productFieldName
	m.fields[productFieldName].Focus()
}

func (m *ProductsModel) submitForm() tea.Cmd {
	name := m.fields[productFieldName].Value()
	rateStr := m.fields[productFieldRate].Value()
	description := m.fields[productFieldDescription].Value()
	editingID := m.editingID

	return func() tea.Msg {
		rate, err := strconv.ParseFloat(rateStr, 64)
		if err != nil {
			return productSavedMsg{err: fmt.Errorf("invalid rate %q", rateStr)}
		}
		if editingID != "" {
			err := m.app.Store.UpdateProduct(editingID, name, description, rate)
			return productSavedMsg{name: name, err: err}
		}
		_, err = m.app.Store.AddProduct(name, description, rate)
		return productSavedMsg{name: name, err: err}
	}
}

func (m *ProductsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case productsDataMsg:
		m.products = msg.products
		m.symbol = msg.symbol
		if m.cursor >= len(m.products) {
			m.cursor = 0
		}
		return m, nil

	case productSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.mode = productModeList
		m.err = nil
		m.statusMsg = fmt.Sprintf("Saved %s", msg.name)
		return m, m.loadProducts()

	case RefreshDataMsg:
		return m, m.loadProducts()

	case tea.KeyMsg:
		if m.mode == productModeNew || m.mode == productModeEdit {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, DefaultKeyMap.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, DefaultKeyMap.Down):
			if m.cursor < len(m.products)-1 {
				m.cursor++
			}
		case key.Matches(msg, DefaultKeyMap.New):
			m.mode = productModeNew
			m.initForm(nil)
			return m, textinput.Blink
		case key.Matches(msg, DefaultKeyMap.Edit):
			if len(m.products) > 0 {
				m.mode = productModeEdit
				m.initForm(m.products[m.cursor])
				return m, textinput.Blink
			}
		case key.Matches(msg, DefaultKeyMap.Select):
			if len(m.products) > 0 {
				product := m.products[m.cursor]
				item, err := m.app.Store.AddProductItem(product.ID)
				if err != nil {
					m.err = err
					return m, nil
				}
				m.err = nil
				m.statusMsg = fmt.Sprintf("Added %s to the current invoice", item.Name)
			}
		}
	}

	return m, nil
}

func (m *ProductsModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = productModeList
		m.err = nil
		return m, nil

	case tea.KeyTab, tea.KeyDown:
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + 1) % productFieldCount
		m.fields[m.fieldFocus].Focus()
		return m, textinput.Blink

	case tea.KeyShiftTab, tea.KeyUp:
		m.fields[m.fieldFocus].Blur()
		m.fieldFocus = (m.fieldFocus + productFieldCount - 1) % productFieldCount
		m.fields[m.fieldFocus].Focus()
		return m, textinput.Blink

	case tea.KeyEnter:
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	m.fields[m.fieldFocus], cmd = m.fields[m.fieldFocus].Update(msg)
	return m, cmd
}

func (m *ProductsModel) View() string {
	if m.mode == productModeNew || m.mode == productModeEdit {
		return m.renderForm()
	}

	var s string
	if len(m.products) == 0 {
		s += subtitleStyle.Render("  No products yet. Press N to add one.") + "\n"
	} else {
		s += fmt.Sprintf("  %-28s %12s  %s\n", "Name", "Rate", "Description")
		for i, product := range m.products {
			line := fmt.Sprintf("%-28s %12s  %s",
				truncateStr(product.Name, 28),
				formatMoney(m.symbol, product.Rate),
				truncateStr(product.Description, 30),
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

	s += "\n  " + subtitleStyle.Render("n new  e edit  enter add to current invoice")
	return s
}

func (m *ProductsModel) renderForm() string {
	title := "  New Product"
	if m.mode == productModeEdit {
		title = "  Edit Product"
	}

	labels := [productFieldCount]string{"Name", "Rate", "Description"}
	s := titleStyle.Render(title) + "\n\n"
	for i, field := range m.fields {
		s += fmt.Sprintf("  %-12s %s\n", labels[i], field.View())
	}

	if m.err != nil {
		s += "\n  " + lipgloss.NewStyle().Foreground(errorColor).Render(m.err.Error()) + "\n"
	}

	s += "\n  " + subtitleStyle.Render("tab next field  enter save  esc cancel")
	return s
}
