package domain

import (
	"strings"
	"testing"
)

func TestParseTile(t *testing.T) {
	cases := []struct {
		input   string
		want    Tile
		wantErr bool
	}{
		{"36KWA", "36KWA", false},
		{"T36KWA", "36KWA", false},
		{" T31UFU ", "31UFU", false},
		{"36kwa", "", true},
		{"6KWA", "", true},
		{"36KWAX", "", true},
		{"TT36KWA", "36KWA", false},
		{"T", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParseTile(c.input)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseTile(%q) expected error", c.input)
				continue
			}
			if !IsKind(err, KindInvalidInput) {
				t.Errorf("ParseTile(%q) expected invalid_input, got %v", c.input, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseTile(%q) unexpected error: %v", c.input, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseTile(%q) = %q, want %q", c.input, got, c.want)
		}
	}
}

func TestParseTile_MessageMentionsExample(t *testing.T) {
	_, err := ParseTile("bad")
	if err == nil || !strings.Contains(err.Error(), "T36KWA") {
		t.Fatalf("expected example tile in error, got %v", err)
	}
}

func TestTileFilter(t *testing.T) {
	if got := Tile("36KWA").Filter(); got != "T36KWA" {
		t.Fatalf("unexpected filter %q", got)
	}
}
