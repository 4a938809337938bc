package tui

import (
	"strings"

	"wishlist-cli/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type wishRowItem struct {
	item model.WishlistItem
}

var _ list.Item = wishRowItem{}

func (w wishRowItem) Title() string { return w.item.Title }

func (w wishRowItem) Description() string { return w.item.Description }

// FilterValue feeds the bubbles list fuzzy filter ("/" key).
func (w wishRowItem) FilterValue() string {
	return w.item.Title + " " + w.item.Description
}

func itemsAsListRows(items []model.WishlistItem) []list.Item {
	rows := make([]list.Item, 0, len(items))
	for _, it := range items {
		rows = append(rows, wishRowItem{item: it})
	}
	return rows
}

func newItemsList(title string) list.Model {
	l := list.New([]list.Item{}, newWishRowDelegate(), 0, 0)
	l.Title = title
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetStatusBarItemName("item", "items")
	l.DisableQuitKeybindings()
	return l
}

func selectRowByID(l *list.Model, id string) {
	if strings.TrimSpace(id) == "" {
		return
	}
	for i, row := range l.Items() {
		if it, ok := row.(wishRowItem); ok && it.item.ID == id {
			l.Select(i)
			return
		}
	}
}
