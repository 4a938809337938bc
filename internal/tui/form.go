package tui

import (
	"strconv"
	"strings"

	"wishlist-cli/internal/imageref"
	"wishlist-cli/internal/model"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Form field order. Status is last and is not a text input: left/right cycle
// the three literals.
const (
	formFieldTitle = iota
	formFieldPrice
	formFieldURL
	formFieldImage
	formFieldDate
	formFieldDescription
	formFieldStatus
	formFieldCount
)

var formFieldLabels = [formFieldCount]string{
	"Title *",
	"Price *",
	"Link",
	"Image (URL or file path)",
	"Desired date (YYYY-MM-DD)",
	"Description (markdown)",
	"Status",
}

type formState struct {
	editingID string // empty => add
	prevImage string // kept when image resolution fails

	inputs [formFieldStatus]textinput.Model
	status model.Status
	focus  int

	errMsg string
}

func newItemForm(edit *model.WishlistItem) *formState {
	f := &formState{status: model.StatusPlanned}

	for i := range f.inputs {
		in := textinput.New()
		in.Prompt = ""
		in.CharLimit = 0
		f.inputs[i] = in
	}
	f.inputs[formFieldTitle].Placeholder = "What do you want?"
	f.inputs[formFieldPrice].Placeholder = "0.00"
	f.inputs[formFieldURL].Placeholder = "https://example.com/product"
	f.inputs[formFieldDate].Placeholder = "2025-12-31"

	if edit != nil {
		f.editingID = edit.ID
		f.prevImage = edit.Image
		f.inputs[formFieldTitle].SetValue(edit.Title)
		f.inputs[formFieldPrice].SetValue(strconv.FormatFloat(edit.Price, 'f', -1, 64))
		f.inputs[formFieldURL].SetValue(edit.URL)
		f.inputs[formFieldImage].SetValue(edit.Image)
		f.inputs[formFieldDate].SetValue(edit.DesiredDate)
		f.inputs[formFieldDescription].SetValue(edit.Description)
		f.status = edit.Status
	}

	f.inputs[formFieldTitle].Focus()
	return f
}

func (f *formState) setFocus(idx int) {
	if idx < 0 {
		idx = formFieldCount - 1
	}
	if idx >= formFieldCount {
		idx = 0
	}
	f.focus = idx
	for i := range f.inputs {
		if i == idx {
			f.inputs[i].Focus()
		} else {
			f.inputs[i].Blur()
		}
	}
}

// update handles one key. It reports whether the user asked to save.
func (f *formState) update(msg tea.KeyMsg) (save bool, cmd tea.Cmd) {
	switch msg.String() {
	case "tab", "down":
		f.setFocus(f.focus + 1)
		return false, nil
	case "shift+tab", "up":
		f.setFocus(f.focus - 1)
		return false, nil
	case "ctrl+s":
		return true, nil
	case "enter":
		if f.focus == formFieldStatus {
			return true, nil
		}
		f.setFocus(f.focus + 1)
		return false, nil
	}

	if f.focus == formFieldStatus {
		switch msg.String() {
		case "left", "h":
			f.status = prevStatus(f.status)
		case "right", "l", " ":
			f.status = nextStatus(f.status)
		}
		return false, nil
	}

	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return false, cmd
}

func prevStatus(s model.Status) model.Status {
	return nextStatus(nextStatus(s))
}

// draft parses the form into a Draft. Parse failures surface as errMsg and
// block the save; lifecycle validation errors are handled by the caller.
func (f *formState) draft() (model.Draft, bool) {
	priceRaw := strings.TrimSpace(f.inputs[formFieldPrice].Value())
	price := 0.0
	if priceRaw != "" {
		p, err := strconv.ParseFloat(priceRaw, 64)
		if err != nil {
			f.errMsg = "price must be a number"
			return model.Draft{}, false
		}
		price = p
	}

	// Image acquisition failures are swallowed: keep the previous reference.
	image, err := imageref.Resolve(f.inputs[formFieldImage].Value(), false)
	if err != nil {
		image = f.prevImage
	}

	return model.Draft{
		Title:       f.inputs[formFieldTitle].Value(),
		Price:       price,
		URL:         strings.TrimSpace(f.inputs[formFieldURL].Value()),
		Image:       image,
		Description: f.inputs[formFieldDescription].Value(),
		DesiredDate: strings.TrimSpace(f.inputs[formFieldDate].Value()),
		Status:      f.status,
	}, true
}

func (f *formState) view(screenWidth int) string {
	bodyW := modalBodyWidth(screenWidth)
	label := styleMuted()
	focusedLabel := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	var lines []string
	for i := 0; i < formFieldStatus; i++ {
		st := label
		if i == f.focus {
			st = focusedLabel
		}
		lines = append(lines, st.Render(formFieldLabels[i]))
		lines = append(lines, renderInputLine(bodyW, f.inputs[i].View()))
		lines = append(lines, "")
	}

	st := label
	if f.focus == formFieldStatus {
		st = focusedLabel
	}
	lines = append(lines, st.Render(formFieldLabels[formFieldStatus]))
	var opts []string
	for _, s := range model.KnownStatuses {
		o := statusLabel(s)
		if s == f.status {
			o = lipgloss.NewStyle().
				Foreground(colorSurfaceBg).
				Background(statusColor(s)).
				Padding(0, 1).
				Render(o)
		} else {
			o = lipgloss.NewStyle().Padding(0, 1).Render(o)
		}
		opts = append(opts, o)
	}
	lines = append(lines, strings.Join(opts, " "))

	if f.errMsg != "" {
		lines = append(lines, "", lipgloss.NewStyle().Foreground(colorError).Render(f.errMsg))
	}

	lines = append(lines, "", styleMuted().Width(bodyW).Render("tab/↑↓: field   ctrl+s: save   esc: cancel"))

	title := "Add item"
	if f.editingID != "" {
		title = "Edit item"
	}
	return renderModalBox(screenWidth, title, strings.Join(lines, "\n"))
}
