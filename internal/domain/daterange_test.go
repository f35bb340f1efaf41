package domain

import (
	"testing"
	"time"
)

func TestNewDateRange_Defaults(t *testing.T) {
	now := time.Date(2024, 3, 9, 15, 0, 0, 0, time.UTC)
	r, err := NewDateRange("", "", now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r.StartString() != "20150101" {
		t.Fatalf("unexpected start %s", r.StartString())
	}
	if r.EndString() != "20240309" {
		t.Fatalf("unexpected end %s", r.EndString())
	}
}

func TestNewDateRange_Invalid(t *testing.T) {
	now := time.Now()
	if _, err := NewDateRange("2017-01-01", "", now); err == nil {
		t.Fatal("expected error for dashed date")
	}
	if _, err := NewDateRange("20180101", "20170101", now); !IsKind(err, KindInvalidInput) {
		t.Fatalf("expected invalid_input for reversed range, got %v", err)
	}
}

func TestDateRange_ContainsInclusive(t *testing.T) {
	r, err := NewDateRange("20170101", "20170131", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	cases := []struct {
		t    time.Time
		want bool
	}{
		{time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), true},
		{time.Date(2017, 1, 31, 23, 59, 0, 0, time.UTC), true},
		{time.Date(2016, 12, 31, 23, 59, 0, 0, time.UTC), false},
		{time.Date(2017, 2, 1, 0, 0, 0, 0, time.UTC), false},
	}
	for _, c := range cases {
		if got := r.Contains(c.t); got != c.want {
			t.Errorf("Contains(%s) = %v, want %v", c.t, got, c.want)
		}
	}
}

func TestDateRange_GIPPTimes(t *testing.T) {
	r, err := NewDateRange("20170105", "20170312", time.Now())
	if err != nil {
		t.Fatal(err)
	}
	if r.MinTime() != "2017-01-05T00:00:00Z" {
		t.Fatalf("unexpected min time %s", r.MinTime())
	}
	if r.MaxTime() != "2017-03-12T23:59:59Z" {
		t.Fatalf("unexpected max time %s", r.MaxTime())
	}
}
