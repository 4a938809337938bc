package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"wishlist-cli/internal/model"
	"wishlist-cli/internal/mutate"
	"wishlist-cli/internal/store"
	"wishlist-cli/internal/view"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type mode int

const (
	modeList mode = iota
	modeForm
	modeConfirmDelete
	modePrompt
)

type promptKind int

const (
	promptMinPrice promptKind = iota
	promptMaxPrice
	promptDateFrom
	promptDateTo
)

var promptTitles = map[promptKind]string{
	promptMinPrice: "Min price (empty clears)",
	promptMaxPrice: "Max price (empty clears)",
	promptDateFrom: "Date from YYYY-MM-DD (empty clears)",
	promptDateTo:   "Date to YYYY-MM-DD (empty clears)",
}

type reloadTickMsg struct{}

type appModel struct {
	store store.Store

	items  []model.WishlistItem // full collection
	filter model.Filter
	sort   model.Sort

	rows list.Model

	width  int
	height int

	mode mode

	form *formState

	confirmID    string
	confirmTitle string
	confirmFocus confirmModalFocus

	prompt      promptKind
	promptInput textinput.Model

	statusMsg string

	lastModTime time.Time
}

func newAppModel(s store.Store) (appModel, error) {
	m := appModel{
		store: s,
		sort:  model.DefaultSort(),
		rows:  newItemsList("Wishlist"),
	}
	if err := m.reload(); err != nil {
		return appModel{}, err
	}
	m.captureStoreModTime()
	return m, nil
}

func (m appModel) Init() tea.Cmd { return tickReload() }

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case reloadTickMsg:
		if m.storeChanged() {
			_ = m.reload()
			m.captureStoreModTime()
		}
		return m, tickReload()

	case tea.KeyMsg:
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		case modePrompt:
			return m.updatePrompt(msg)
		default:
			return m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m appModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list's own fuzzy filter is capturing input, don't steal keys.
	if m.rows.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.rows, cmd = m.rows.Update(msg)
		return m, cmd
	}

	m.statusMsg = ""

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "r":
		// Reload from disk (CLI commands in another terminal show up).
		_ = m.reload()
		m.captureStoreModTime()
		return m, nil

	case "a":
		m.form = newItemForm(nil)
		m.mode = modeForm
		return m, nil

	case "e":
		if it, ok := m.selected(); ok {
			m.form = newItemForm(&it)
			m.mode = modeForm
		}
		return m, nil

	case "d":
		if it, ok := m.selected(); ok {
			m.confirmID = it.ID
			m.confirmTitle = it.Title
			m.confirmFocus = confirmFocusCancel
			m.mode = modeConfirmDelete
		}
		return m, nil

	case "s":
		if it, ok := m.selected(); ok {
			_, err := mutate.ChangeStatus(context.Background(), m.store, it.ID, nextStatus(it.Status))
			m.afterMutation(it.ID, err)
		}
		return m, nil

	case "1", "2", "3":
		idx := int(msg.String()[0] - '1')
		m.toggleStatusChip(model.KnownStatuses[idx])
		m.refreshRows()
		return m, nil

	case "m":
		return m.openPrompt(promptMinPrice, floatOrEmpty(m.filter.MinPrice))
	case "M":
		return m.openPrompt(promptMaxPrice, floatOrEmpty(m.filter.MaxPrice))
	case "f":
		return m.openPrompt(promptDateFrom, m.filter.DateFrom)
	case "t":
		return m.openPrompt(promptDateTo, m.filter.DateTo)

	case "o":
		m.sort.Field = nextSortField(m.sort.Field)
		m.refreshRows()
		return m, nil

	case "O":
		if m.sort.Order == model.SortAsc {
			m.sort.Order = model.SortDesc
		} else {
			m.sort.Order = model.SortAsc
		}
		m.refreshRows()
		return m, nil

	case "c":
		m.filter = model.Filter{}
		m.refreshRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "esc" {
		m.form = nil
		m.mode = modeList
		return m, nil
	}

	save, cmd := m.form.update(msg)
	if !save {
		return m, cmd
	}

	d, ok := m.form.draft()
	if !ok {
		return m, nil
	}

	ctx := context.Background()
	var err error
	var saved model.WishlistItem
	if m.form.editingID == "" {
		saved, err = mutate.Create(ctx, m.store, d)
	} else {
		saved, err = mutate.Edit(ctx, m.store, m.form.editingID, d)
	}
	if err != nil {
		// Validation errors stay inline in the form; nothing was saved.
		m.form.errMsg = err.Error()
		return m, nil
	}

	m.form = nil
	m.mode = modeList
	m.afterMutation(saved.ID, nil)
	return m, nil
}

func (m appModel) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.mode = modeList
		return m, nil
	case "tab", "left", "right":
		if m.confirmFocus == confirmFocusConfirm {
			m.confirmFocus = confirmFocusCancel
		} else {
			m.confirmFocus = confirmFocusConfirm
		}
		return m, nil
	case "y":
		m.confirmFocus = confirmFocusConfirm
		fallthrough
	case "enter":
		m.mode = modeList
		if m.confirmFocus != confirmFocusConfirm {
			return m, nil
		}
		err := mutate.Delete(context.Background(), m.store, m.confirmID)
		m.afterMutation("", err)
		return m, nil
	}
	return m, nil
}

func (m appModel) updatePrompt(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeList
		return m, nil
	case "enter":
		m.applyPrompt(strings.TrimSpace(m.promptInput.Value()))
		m.mode = modeList
		m.refreshRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	return m, cmd
}

func (m *appModel) openPrompt(kind promptKind, current string) (tea.Model, tea.Cmd) {
	in := textinput.New()
	in.Prompt = ""
	in.SetValue(current)
	in.CursorEnd()
	in.Focus()
	m.prompt = kind
	m.promptInput = in
	m.mode = modePrompt
	return *m, textinput.Blink
}

func (m *appModel) applyPrompt(raw string) {
	switch m.prompt {
	case promptMinPrice, promptMaxPrice:
		var bound *float64
		if raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				m.statusMsg = "price bound must be a number"
				return
			}
			bound = &v
		}
		if m.prompt == promptMinPrice {
			m.filter.MinPrice = bound
		} else {
			m.filter.MaxPrice = bound
		}
	case promptDateFrom, promptDateTo:
		if raw != "" && !model.ValidDate(raw) {
			m.statusMsg = "date bound must be YYYY-MM-DD"
			return
		}
		if m.prompt == promptDateFrom {
			m.filter.DateFrom = raw
		} else {
			m.filter.DateTo = raw
		}
	}
}

// toggleStatusChip mirrors the original filter bar: with no explicit set, all
// three statuses are implicitly on, so the first toggle switches one off by
// selecting the other two.
func (m *appModel) toggleStatusChip(s model.Status) {
	if len(m.filter.Statuses) == 0 {
		var rest []model.Status
		for _, st := range model.KnownStatuses {
			if st != s {
				rest = append(rest, st)
			}
		}
		m.filter.Statuses = rest
		return
	}
	if m.filter.HasStatus(s) {
		var rest []model.Status
		for _, st := range m.filter.Statuses {
			if st != s {
				rest = append(rest, st)
			}
		}
		m.filter.Statuses = rest
		return
	}
	m.filter.Statuses = append(m.filter.Statuses, s)
	if len(m.filter.Statuses) == len(model.KnownStatuses) {
		// All toggled on again == no filtering.
		m.filter.Statuses = nil
	}
}

func nextSortField(f model.SortField) model.SortField {
	switch f {
	case model.SortByCreatedAt:
		return model.SortByTitle
	case model.SortByTitle:
		return model.SortByPrice
	case model.SortByPrice:
		return model.SortByDesiredDate
	default:
		return model.SortByCreatedAt
	}
}

func floatOrEmpty(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func (m *appModel) selected() (model.WishlistItem, bool) {
	it, ok := m.rows.SelectedItem().(wishRowItem)
	if !ok {
		return model.WishlistItem{}, false
	}
	return it.item, true
}

// afterMutation reloads the collection and re-derives the visible rows; the
// explicit changed->recompute contract keeps the view engine pure.
func (m *appModel) afterMutation(keepID string, err error) {
	if err != nil {
		m.statusMsg = err.Error()
	}
	_ = m.reload()
	m.captureStoreModTime()
	if keepID != "" {
		selectRowByID(&m.rows, keepID)
	}
}

func (m *appModel) reload() error {
	items, err := m.store.ListAll(context.Background())
	if err != nil {
		return err
	}
	m.items = items
	m.refreshRows()
	return nil
}

func (m *appModel) refreshRows() {
	curID := ""
	if it, ok := m.selected(); ok {
		curID = it.ID
	}
	visible := view.Derive(m.items, m.filter, m.sort)
	m.rows.SetItems(itemsAsListRows(visible))
	selectRowByID(&m.rows, curID)
}

func (m appModel) View() string {
	switch m.mode {
	case modeForm:
		return placeCentered(m.width, m.height, m.form.view(m.width))
	case modeConfirmDelete:
		body := fmt.Sprintf("Delete %q? This cannot be undone.", m.confirmTitle)
		return placeCentered(m.width, m.height,
			renderConfirmModal(m.width, "Delete item", body, "Delete", "Cancel", m.confirmFocus))
	case modePrompt:
		bodyW := modalBodyWidth(m.width)
		content := renderInputLine(bodyW, m.promptInput.View()) + "\n\n" +
			styleMuted().Render("enter: apply   esc: cancel")
		return placeCentered(m.width, m.height,
			renderModalBox(m.width, promptTitles[m.prompt], content))
	}

	visible := view.Derive(m.items, m.filter, m.sort)
	header := lipgloss.NewStyle().Bold(true).Render(
		fmt.Sprintf("Wishlist  %d items  planned total %s", len(visible), formatPrice(view.PlannedTotal(visible))))

	filterBar := renderFilterBar(m.filter, m.sort)

	var body string
	if len(m.rows.Items()) == 0 {
		body = styleMuted().Render("Your wishlist is empty. Press a to add the first item.")
	} else {
		body = m.viewSplit()
	}

	footer := styleMuted().Render(
		"a: add  e: edit  d: delete  s: status  1/2/3: status filter  m/M: price  f/t: date  o/O: sort  c: clear  q: quit")

	lines := []string{header, filterBar, "", body, "", footer}
	if m.statusMsg != "" {
		lines = append(lines, lipgloss.NewStyle().Foreground(colorError).Render(m.statusMsg))
	}
	return strings.Join(lines, "\n")
}

func (m *appModel) viewSplit() string {
	bodyHeight := m.bodyHeight()

	leftWidth := m.width / 2
	if leftWidth < 40 {
		leftWidth = 40
	}
	rightWidth := m.width - leftWidth - 2
	if rightWidth < 30 {
		rightWidth = 30
	}

	m.rows.SetSize(leftWidth, bodyHeight)
	left := m.rows.View()

	var detail string
	if it, ok := m.selected(); ok {
		detail = renderItemDetail(it, rightWidth, bodyHeight)
	} else {
		detail = lipgloss.NewStyle().Width(rightWidth).Height(bodyHeight).Render("No item selected.")
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, left, detail)
}

func (m appModel) bodyHeight() int {
	h := m.height - 7
	if h < 8 {
		h = 8
	}
	return h
}

func (m *appModel) resize() {
	m.rows.SetSize(m.width/2, m.bodyHeight())
}

func tickReload() tea.Cmd {
	return tea.Tick(750*time.Millisecond, func(time.Time) tea.Msg { return reloadTickMsg{} })
}

func (m *appModel) captureStoreModTime() {
	m.lastModTime = storeModTime(m.store.Dir)
}

func (m *appModel) storeChanged() bool {
	return storeModTime(m.store.Dir).After(m.lastModTime)
}

// storeModTime covers both the db file and its WAL: under WAL mode, writes
// from another process often only touch the -wal file.
func storeModTime(dir string) time.Time {
	latest := fileModTime(filepath.Join(dir, "wishlist.sqlite"))
	if wal := fileModTime(filepath.Join(dir, "wishlist.sqlite-wal")); wal.After(latest) {
		latest = wal
	}
	return latest
}

func fileModTime(path string) time.Time {
	st, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return st.ModTime()
}
