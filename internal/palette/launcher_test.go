package palette

import (
	"errors"
	"strings"
	"testing"
)

func TestRofiLine_UsesSingleNullSeparator(t *testing.T) {
	out := newRofi().line(Item{Label: "Grid", IsHeader: true, Icon: "view-grid"})

	if got := strings.Count(out, "\x00"); got != 1 {
		t.Fatalf("expected exactly 1 NUL separator, got %d (%q)", got, out)
	}
	if !strings.Contains(out, "<b>Grid</b>\x00nonselectable\x1ftrue") {
		t.Fatalf("expected bold non-selectable header, got %q", out)
	}
	if !strings.Contains(out, "\x1ficon\x1fview-grid") {
		t.Fatalf("expected icon property, got %q", out)
	}
}

func TestRofiLine_EscapesMarkup(t *testing.T) {
	out := newRofi().line(Item{Label: "Row <1> & col"})
	if out != "Row &lt;1&gt; &amp; col" {
		t.Fatalf("expected escaped label, got %q", out)
	}
}

func TestDmenuLine_IsPlainLabel(t *testing.T) {
	out := newDmenu().line(Item{Label: "  Show\npanel ", Icon: "window-new", IsHeader: true})
	if out != "Show panel" {
		t.Fatalf("expected plain label, got %q", out)
	}
}

func TestRofiArgs(t *testing.T) {
	args := newRofi().args("floatpane", []Item{
		{Label: "Grid", IsHeader: true},
		{Label: "a"},
		{Label: "b", IsActive: true},
	})

	for _, pair := range [][2]string{
		{"-format", "i"},
		{"-p", "floatpane"},
		{"-a", "2"},
		{"-selected-row", "1"},
	} {
		if !containsArgs(args, pair[0], pair[1]) {
			t.Fatalf("expected %s %s in args, got %v", pair[0], pair[1], args)
		}
	}
	if !containsArg(args, "-no-custom") {
		t.Fatalf("expected -no-custom in args, got %v", args)
	}
}

func TestDmenuArgs(t *testing.T) {
	args := newDmenu().args("Place", nil)
	if strings.Join(args, " ") != "-i -p Place" {
		t.Fatalf("unexpected dmenu args %v", args)
	}
}

func TestRofiParse_Index(t *testing.T) {
	items := []Item{{Label: "a", Action: "a"}, {Label: "b", Action: "b"}}

	got, err := newRofi().parse("1", items)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Action != "b" {
		t.Fatalf("expected action b, got %q", got.Action)
	}
	if _, err := newRofi().parse("7", items); err == nil {
		t.Fatalf("expected out of range error")
	}
}

func TestDmenuParse_DisambiguatedLabels(t *testing.T) {
	rows := []Item{
		{Label: "Dup", Action: "a"},
		{Label: "Dup", Action: "b"},
	}
	disambiguate(rows)
	if rows[0].Label != "Dup" || rows[1].Label != "Dup (2)" {
		t.Fatalf("unexpected labels %q, %q", rows[0].Label, rows[1].Label)
	}

	got, err := newDmenu().parse("Dup (2)", rows)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Action != "b" {
		t.Fatalf("expected action b, got %q", got.Action)
	}
	if _, err := newDmenu().parse("Nope", rows); err == nil {
		t.Fatalf("expected unknown selection error")
	}
}

func TestDetectAndNewLauncher(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	lookPath = func(name string) (string, error) {
		if name == "dmenu" {
			return "/usr/bin/dmenu", nil
		}
		return "", errors.New("not found")
	}

	name, err := Detect()
	if err != nil || name != "dmenu" {
		t.Fatalf("Detect() = %q, %v; want dmenu", name, err)
	}
	l, err := NewLauncher("auto")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if l.(*commandLauncher).rofi {
		t.Fatalf("expected dmenu launcher")
	}
	if _, err := NewLauncher("rofi"); err == nil {
		t.Fatalf("expected missing rofi error")
	}
	if _, err := NewLauncher("fuzzel"); err == nil {
		t.Fatalf("expected unknown launcher error")
	}

	lookPath = func(string) (string, error) { return "", errors.New("not found") }
	if _, err := Detect(); err == nil {
		t.Fatalf("expected detection failure")
	}
}

func containsArg(args []string, want string) bool {
	for _, a := range args {
		if a == want {
			return true
		}
	}
	return false
}

func containsArgs(args []string, a, b string) bool {
	for i := 0; i+1 < len(args); i++ {
		if args[i] == a && args[i+1] == b {
			return true
		}
	}
	return false
}
