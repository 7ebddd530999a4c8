package palette

import (
	"bytes"
	"errors"
	"fmt"
	"html"
	"os/exec"
	"strconv"
	"strings"
)

// commandLauncher pipes rows into rofi or dmenu on stdin and reads the
// selection from stdout.
type commandLauncher struct {
	command string
	// rofi selects by row index and understands markup and row properties;
	// dmenu echoes the chosen label back.
	rofi bool
}

func newRofi() *commandLauncher  { return &commandLauncher{command: "rofi", rofi: true} }
func newDmenu() *commandLauncher { return &commandLauncher{command: "dmenu"} }

func (l *commandLauncher) Show(prompt string, items []Item) (Item, error) {
	if len(items) == 0 {
		return Item{}, fmt.Errorf("palette: no items to show")
	}

	rows := make([]Item, len(items))
	copy(rows, items)
	if !l.rofi {
		disambiguate(rows)
	}

	cmd := exec.Command(l.command, l.args(prompt, rows)...)
	cmd.Stdin = strings.NewReader(l.input(rows))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	selection := strings.TrimSpace(string(out))
	if err != nil {
		if selection == "" && isCancelExit(err) {
			return Item{}, ErrCancelled
		}
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return Item{}, fmt.Errorf("%s failed: %s", l.command, msg)
		}
		return Item{}, fmt.Errorf("%s failed: %w", l.command, err)
	}
	if selection == "" {
		return Item{}, ErrCancelled
	}
	return l.parse(selection, rows)
}

func (l *commandLauncher) args(prompt string, rows []Item) []string {
	if !l.rofi {
		args := []string{"-i"}
		if prompt != "" {
			args = append(args, "-p", prompt)
		}
		return args
	}

	args := []string{"-dmenu", "-i", "-format", "i", "-no-custom", "-markup-rows", "-show-icons"}
	if prompt != "" {
		args = append(args, "-p", prompt)
	}
	var active []string
	selected := -1
	for i, row := range rows {
		if row.IsHeader {
			continue
		}
		if selected == -1 {
			selected = i
		}
		if row.IsActive {
			active = append(active, strconv.Itoa(i))
		}
	}
	if len(active) > 0 {
		args = append(args, "-a", strings.Join(active, ","))
	}
	if selected >= 0 {
		args = append(args, "-selected-row", strconv.Itoa(selected))
	}
	return args
}

func (l *commandLauncher) input(rows []Item) string {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		lines = append(lines, l.line(row))
	}
	return strings.Join(lines, "\n")
}

// line renders a row. Rofi row properties follow a single NUL and are
// separated by \x1f.
func (l *commandLauncher) line(row Item) string {
	label := cleanLabel(row.Label)
	if !l.rofi {
		return label
	}

	label = html.EscapeString(label)
	var props []string
	if row.IsHeader {
		label = "<b>" + label + "</b>"
		props = append(props, "nonselectable", "true")
	}
	if row.Icon != "" {
		props = append(props, "icon", cleanField(row.Icon))
	}
	if len(props) == 0 {
		return label
	}
	return label + "\x00" + strings.Join(props, "\x1f")
}

func (l *commandLauncher) parse(selection string, rows []Item) (Item, error) {
	if l.rofi {
		if idx, err := strconv.Atoi(selection); err == nil {
			if idx < 0 || idx >= len(rows) {
				return Item{}, fmt.Errorf("palette: index %d out of range", idx)
			}
			return rows[idx], nil
		}
	}
	for _, row := range rows {
		if cleanLabel(row.Label) == selection {
			return row, nil
		}
	}
	return Item{}, fmt.Errorf("palette: unknown selection %q", selection)
}

// disambiguate suffixes repeated labels so a label-echoing launcher can
// still tell rows apart.
func disambiguate(rows []Item) {
	seen := make(map[string]int)
	for i := range rows {
		if rows[i].IsHeader {
			continue
		}
		key := cleanLabel(rows[i].Label)
		if key == "" {
			continue
		}
		if n := seen[key]; n > 0 {
			rows[i].Label = fmt.Sprintf("%s (%d)", key, n+1)
		}
		seen[key]++
	}
}

func cleanLabel(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\r", " ", "\n", " ").Replace(s))
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.NewReplacer("\x00", " ", "\x1f", " ", "\r", " ", "\n", " ").Replace(s))
}

// isCancelExit reports the exit codes launchers use for escape (1) and
// Ctrl+C (130).
func isCancelExit(err error) bool {
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		return false
	}
	code := exitErr.ExitCode()
	return code == 1 || code == 130
}
