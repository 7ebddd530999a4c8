package palette

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	backAction    = "__back__"
	submenuPrefix = "__submenu__:"
)

// Entry is a node of the menu tree. Entries with children open a submenu.
type Entry struct {
	Label    string
	Action   string
	Icon     string
	IsHeader bool
	IsActive bool
	Children []Entry
}

// Menu walks a tree of entries with a launcher, one level per launch.
type Menu struct {
	launcher Launcher
	prompt   string
}

// NewMenu creates a menu whose top level uses prompt.
func NewMenu(launcher Launcher, prompt string) *Menu {
	return &Menu{launcher: launcher, prompt: prompt}
}

// Choose shows root and returns the action of the chosen leaf. Cancelling a
// submenu returns to its parent; cancelling the top level returns
// ErrCancelled.
func (m *Menu) Choose(root []Entry) (string, error) {
	if len(root) == 0 {
		return "", fmt.Errorf("menu: no entries to show")
	}

	type level struct {
		title   string
		entries []Entry
	}
	stack := []level{{title: m.prompt, entries: root}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		items := rows(top.entries, len(stack) > 1)

		picked, err := m.launcher.Show(top.title, items)
		if errors.Is(err, ErrCancelled) || (err == nil && picked.Action == backAction) {
			stack = stack[:len(stack)-1]
			continue
		}
		if err != nil {
			return "", err
		}
		if picked.IsHeader {
			continue
		}

		if idx, ok := strings.CutPrefix(picked.Action, submenuPrefix); ok {
			i, err := strconv.Atoi(idx)
			if err != nil || i < 0 || i >= len(top.entries) {
				continue
			}
			child := top.entries[i]
			stack = append(stack, level{title: child.Label, entries: child.Children})
			continue
		}
		return picked.Action, nil
	}
	return "", ErrCancelled
}

func rows(entries []Entry, nested bool) []Item {
	items := make([]Item, 0, len(entries)+1)
	if nested {
		items = append(items, Item{Label: "← Back", Action: backAction, Icon: "go-previous"})
	}
	for i, e := range entries {
		item := Item{
			Label:    e.Label,
			Action:   e.Action,
			Icon:     e.Icon,
			IsHeader: e.IsHeader,
			IsActive: e.IsActive,
		}
		if len(e.Children) > 0 {
			item.Label += " →"
			item.Action = submenuPrefix + strconv.Itoa(i)
			if item.Icon == "" {
				item.Icon = "folder"
			}
		}
		items = append(items, item)
	}
	return items
}
