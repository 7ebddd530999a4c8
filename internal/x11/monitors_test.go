package x11

import "testing"

func TestMonitorAt(t *testing.T) {
	monitors := []Monitor{
		{Name: "left", X: 0, Y: 0, Width: 1920, Height: 1080},
		{Name: "right", X: 1920, Y: 0, Width: 2560, Height: 1440},
	}

	tests := []struct {
		name string
		x, y int
		want string
	}{
		{"origin", 0, 0, "left"},
		{"last pixel of left", 1919, 1079, "left"},
		{"right edge belongs to next", 1920, 0, "right"},
		{"below shorter monitor", 100, 1200, ""},
		{"tall part of right", 3000, 1300, "right"},
		{"negative", -1, 10, ""},
		{"past everything", 4480, 0, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := monitorAt(monitors, tt.x, tt.y)
			switch {
			case tt.want == "" && got != nil:
				t.Fatalf("monitorAt(%d,%d) = %q, want none", tt.x, tt.y, got.Name)
			case tt.want != "" && got == nil:
				t.Fatalf("monitorAt(%d,%d) = nil, want %q", tt.x, tt.y, tt.want)
			case got != nil && got.Name != tt.want:
				t.Fatalf("monitorAt(%d,%d) = %q, want %q", tt.x, tt.y, got.Name, tt.want)
			}
		})
	}
}

func TestMonitorAtReturnsSliceElement(t *testing.T) {
	monitors := []Monitor{{Name: "only", Width: 10, Height: 10}}
	if got := monitorAt(monitors, 5, 5); got != &monitors[0] {
		t.Fatalf("expected pointer into the slice")
	}
	if got := monitorAt(nil, 0, 0); got != nil {
		t.Fatalf("expected nil for no monitors")
	}
}
