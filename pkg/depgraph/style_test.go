package depgraph

import "testing"

func TestBorderColor(t *testing.T) {
	tests := []struct {
		name string
		prop Property
		want string
	}{
		{"Default", Property{}, "black"},
		{"Truncated", Property{IsTruncated: true}, "red"},
		{"Orphaned", Property{IsOrphaned: true}, "grey75"},
		{"TruncatedOrphaned", Property{IsTruncated: true, IsOrphaned: true}, "darkorchid3"},
		{"OriginalDoesNotChangeColor", Property{IsOriginal: true}, "black"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := borderColor(&tt.prop); got != tt.want {
				t.Errorf("borderColor(%+v) = %q, want %q", tt.prop, got, tt.want)
			}
		})
	}
}

func TestBorderStyle(t *testing.T) {
	tests := []struct {
		name string
		prop Property
		want string
	}{
		{"Default", Property{}, "filled"},
		{"Original", Property{IsOriginal: true}, "filled,bold"},
		{"Incomplete", Property{IsIncomplete: true}, "filled,dashed"},
		{"Peripheral", Property{IsPeripheral: true}, "solid"},
		{"PeripheralOriginal", Property{IsPeripheral: true, IsOriginal: true}, "bold"},
		{"PeripheralIncomplete", Property{IsPeripheral: true, IsIncomplete: true}, "dashed"},
		{"Everything", Property{IsOriginal: true, IsIncomplete: true}, "filled,bold,dashed"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := borderStyle(&tt.prop); got != tt.want {
				t.Errorf("borderStyle(%+v) = %q, want %q", tt.prop, got, tt.want)
			}
		})
	}
}

func TestBackgroundColorCycles(t *testing.T) {
	if backgroundColor(0) != "#eeeeff" {
		t.Errorf("level 0 = %q, want #eeeeff", backgroundColor(0))
	}
	if backgroundColor(1) != "#ddddee" {
		t.Errorf("level 1 = %q, want #ddddee", backgroundColor(1))
	}
	if backgroundColor(len(levelPalette)) != backgroundColor(0) {
		t.Error("palette should wrap around")
	}
}
