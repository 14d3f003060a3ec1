package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/handodds/internal/config"
	"github.com/lox/handodds/internal/deck"
)

// Columns of a category row
const (
	ColName = iota
	ColAmount
	ColMin
	ColMax
	numCols
)

// Columns of the size row
const (
	ColDeckSize = iota
	ColHandSize
)

var (
	ErrNotANumber = errors.New("must be a whole number")
	ErrNoPath     = errors.New("no deck file to save to")
)

var columnWidths = [numCols]int{18, 8, 6, 6}

type keyMap struct {
	Next   key.Binding
	Prev   key.Binding
	Up     key.Binding
	Down   key.Binding
	Add    key.Binding
	Remove key.Binding
	Save   key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Add, k.Remove, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Up, k.Down},
		{k.Add, k.Remove, k.Save, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		Next:   key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		Prev:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Up:     key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "row up")),
		Down:   key.NewBinding(key.WithKeys("down", "enter"), key.WithHelp("↓", "row down")),
		Add:    key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "add category")),
		Remove: key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "remove category")),
		Save:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:   key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
	}
}

// Editor is a Bubble Tea model for editing a deck and watching its
// probability update on every keystroke.
type Editor struct {
	logger *log.Logger
	path   string
	file   *config.File
	name   string

	sizes [2]textinput.Model
	rows  [][numCols]textinput.Model

	// focusRow 0 is the size row; category i is row i+1.
	focusRow int
	focusCol int

	probability float64
	misc        deck.Category
	err         error
	status      string

	keys     keyMap
	help     help.Model
	quitting bool
}

// NewEditor creates an editor for d. When path is set, saving writes d into
// file (which may be nil) and stores it at path.
func NewEditor(d *deck.Deck, file *config.File, path string, logger *log.Logger) *Editor {
	e := &Editor{
		logger: logger.WithPrefix("tui"),
		path:   path,
		file:   file,
		name:   d.Name,
		keys:   defaultKeyMap(),
		help:   help.New(),
	}

	e.sizes[ColDeckSize] = newInput("deck", 6)
	e.sizes[ColHandSize] = newInput("hand", 6)
	e.sizes[ColDeckSize].SetValue(strconv.Itoa(d.Size))
	e.sizes[ColHandSize].SetValue(strconv.Itoa(d.HandSize))

	for _, c := range d.Categories {
		e.appendRow(c)
	}

	e.setFocus(0, ColDeckSize)
	e.recalculate()
	return e
}

func newInput(placeholder string, width int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.Prompt = ""
	ti.CharLimit = 32
	ti.Width = width
	ti.TextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FAFAFA"))
	return ti
}

func (e *Editor) appendRow(c deck.Category) {
	var row [numCols]textinput.Model
	row[ColName] = newInput("name", columnWidths[ColName]-2)
	row[ColAmount] = newInput("0", columnWidths[ColAmount]-2)
	row[ColMin] = newInput("0", columnWidths[ColMin]-2)
	row[ColMax] = newInput("0", columnWidths[ColMax]-2)

	row[ColName].SetValue(c.Name)
	row[ColAmount].SetValue(strconv.Itoa(c.Amount))
	row[ColMin].SetValue(strconv.Itoa(c.Min))
	row[ColMax].SetValue(strconv.Itoa(c.Max))
	e.rows = append(e.rows, row)
}

// Init initializes the editor
func (e *Editor) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages in the editor
func (e *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		e.help.Width = msg.Width
		return e, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, e.keys.Quit):
			e.quitting = true
			return e, tea.Quit
		case key.Matches(msg, e.keys.Next):
			e.moveFocus(1)
			return e, nil
		case key.Matches(msg, e.keys.Prev):
			e.moveFocus(-1)
			return e, nil
		case key.Matches(msg, e.keys.Up):
			e.moveRow(-1)
			return e, nil
		case key.Matches(msg, e.keys.Down):
			e.moveRow(1)
			return e, nil
		case key.Matches(msg, e.keys.Add):
			e.AddCategory()
			return e, nil
		case key.Matches(msg, e.keys.Remove):
			if e.focusRow > 0 {
				e.RemoveCategory(e.focusRow - 1)
			}
			return e, nil
		case key.Matches(msg, e.keys.Save):
			if err := e.Save(); err != nil {
				e.status = ""
				e.err = err
			}
			return e, nil
		}
	}

	input := e.focused()
	before := input.Value()
	var cmd tea.Cmd
	*input, cmd = input.Update(msg)
	if input.Value() != before {
		e.status = ""
		e.recalculate()
	}
	return e, cmd
}

// View renders the editor
func (e *Editor) View() string {
	if e.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Deck Probability Calculator"))
	b.WriteString("\n\n")

	b.WriteString(LabelStyle.Render("Deck size "))
	b.WriteString(e.sizes[ColDeckSize].View())
	b.WriteString("  ")
	b.WriteString(LabelStyle.Render("Hand size "))
	b.WriteString(e.sizes[ColHandSize].View())
	b.WriteString("\n\n")

	b.WriteString(renderCells(LabelStyle, "Name", "Amount", "Min", "Max"))
	b.WriteString("\n")
	for i := range e.rows {
		cells := make([]string, numCols)
		for col := range cells {
			cells[col] = e.rows[i][col].View()
		}
		marker := "  "
		if e.focusRow == i+1 {
			marker = FocusedStyle.Render("> ")
		}
		b.WriteString(marker)
		b.WriteString(renderCells(lipgloss.NewStyle(), cells...))
		b.WriteString("\n")
	}
	b.WriteString("  ")
	b.WriteString(renderCells(MiscStyle,
		e.misc.Name,
		strconv.Itoa(e.misc.Amount),
		strconv.Itoa(e.misc.Min),
		strconv.Itoa(e.misc.Max)))
	b.WriteString("\n\n")

	if e.err != nil {
		b.WriteString(ErrorStyle.Render(e.err.Error()))
	} else {
		b.WriteString("Probability of opening this hand: ")
		b.WriteString(ProbabilityStyle(e.probability).Render(fmt.Sprintf("%.2f%%", e.probability)))
	}
	b.WriteString("\n")

	if e.status != "" {
		b.WriteString(SuccessStyle.Render(e.status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(e.help.View(e.keys))
	return b.String()
}

func renderCells(style lipgloss.Style, cells ...string) string {
	rendered := make([]string, len(cells))
	for i, c := range cells {
		rendered[i] = style.Width(columnWidths[i]).Render(c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// Deck builds a deck from the current field values. Counts are clamped to
// [0, deck size].
func (e *Editor) Deck() (*deck.Deck, error) {
	size, err := parseCount("deck size", e.sizes[ColDeckSize].Value())
	if err != nil {
		return nil, err
	}
	hand, err := parseCount("hand size", e.sizes[ColHandSize].Value())
	if err != nil {
		return nil, err
	}

	d := deck.New(e.name, size, hand)
	for i, row := range e.rows {
		var counts [numCols]int
		for _, col := range []int{ColAmount, ColMin, ColMax} {
			label := fmt.Sprintf("row %d %s", i+1, columnName(col))
			v, err := parseCount(label, row[col].Value())
			if err != nil {
				return nil, err
			}
			counts[col] = d.Clamp(v)
		}
		d.Add(strings.TrimSpace(row[ColName].Value()), counts[ColAmount], counts[ColMin], counts[ColMax])
	}
	return d, nil
}

// Probability returns the last computed probability, or the error that
// prevented computing it.
func (e *Editor) Probability() (float64, error) {
	return e.probability, e.err
}

// Status returns the last status message
func (e *Editor) Status() string {
	return e.status
}

// Focus returns the focused row and column
func (e *Editor) Focus() (int, int) {
	return e.focusRow, e.focusCol
}

// Categories returns the number of category rows
func (e *Editor) Categories() int {
	return len(e.rows)
}

// SetField replaces the value of a field and recalculates. Row 0 is the size
// row.
func (e *Editor) SetField(row, col int, value string) {
	input := e.input(row, col)
	if input == nil {
		return
	}
	input.SetValue(value)
	e.recalculate()
}

// AddCategory appends an empty category row and focuses its name.
func (e *Editor) AddCategory() {
	e.appendRow(deck.Category{Amount: 1, Min: 1, Max: 1})
	e.setFocus(len(e.rows), ColName)
	e.recalculate()
}

// RemoveCategory deletes category row i.
func (e *Editor) RemoveCategory(i int) {
	if i < 0 || i >= len(e.rows) {
		return
	}
	e.rows = append(e.rows[:i], e.rows[i+1:]...)
	row := min(e.focusRow, len(e.rows))
	col := e.focusCol
	if row == 0 {
		col = min(col, ColHandSize)
	}
	e.setFocus(row, col)
	e.recalculate()
}

// Save stores the deck in the editor's deck file.
func (e *Editor) Save() error {
	if e.path == "" {
		return ErrNoPath
	}
	d, err := e.Deck()
	if err != nil {
		return err
	}
	if d.Name == "" {
		d.Name = "default"
	}
	if e.file == nil {
		e.file = &config.File{}
	}
	e.file.Put(d)
	if err := e.file.Save(e.path); err != nil {
		return err
	}

	e.logger.Info("Saved deck", "deck", d.Name, "path", e.path)
	e.status = fmt.Sprintf("Saved %s to %s", d.Name, e.path)
	return nil
}

func (e *Editor) recalculate() {
	d, err := e.Deck()
	if err != nil {
		e.err = err
		return
	}
	e.misc = d.Miscellaneous()
	e.probability, e.err = d.Probability()
	if e.err != nil {
		e.probability = 0
	}
}

func (e *Editor) input(row, col int) *textinput.Model {
	if row == 0 {
		if col < 0 || col > ColHandSize {
			return nil
		}
		return &e.sizes[col]
	}
	if row < 1 || row > len(e.rows) || col < 0 || col >= numCols {
		return nil
	}
	return &e.rows[row-1][col]
}

func (e *Editor) focused() *textinput.Model {
	return e.input(e.focusRow, e.focusCol)
}

func (e *Editor) setFocus(row, col int) {
	if current := e.focused(); current != nil {
		current.Blur()
	}
	e.focusRow, e.focusCol = row, col
	if next := e.focused(); next != nil {
		next.Focus()
	}
}

func (e *Editor) moveFocus(delta int) {
	type pos struct{ row, col int }
	positions := []pos{{0, ColDeckSize}, {0, ColHandSize}}
	for r := 1; r <= len(e.rows); r++ {
		for c := 0; c < numCols; c++ {
			positions = append(positions, pos{r, c})
		}
	}

	current := 0
	for i, p := range positions {
		if p.row == e.focusRow && p.col == e.focusCol {
			current = i
			break
		}
	}
	next := positions[(current+delta+len(positions))%len(positions)]
	e.setFocus(next.row, next.col)
}

func (e *Editor) moveRow(delta int) {
	row := e.focusRow + delta
	if row < 0 || row > len(e.rows) {
		return
	}
	col := e.focusCol
	if row == 0 {
		col = min(col, ColHandSize)
	}
	e.setFocus(row, col)
}

func parseCount(label, value string) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s %w", label, ErrNotANumber)
	}
	return n, nil
}

func columnName(col int) string {
	switch col {
	case ColAmount:
		return "amount"
	case ColMin:
		return "min"
	case ColMax:
		return "max"
	default:
		return "name"
	}
}

// Run starts the editor full screen and blocks until the user quits
func Run(e *Editor) error {
	_, err := tea.NewProgram(e, tea.WithAltScreen()).Run()
	return err
}
