package models

import "testing"

func TestIsExtraID(t *testing.T) {
	cases := []struct {
		id    string
		extra bool
	}{
		{"ABC123", false},
		{"ABC123_a", true},
		{"ABC123_ab", false},
		{"ABC123_A", false},
		{"ABC123_1", false},
		{"ABC123a", false},
		{"HTL9_z", true},
		{"_a", true},
		{"a", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := IsExtraID(tc.id); got != tc.extra {
			t.Fatalf("IsExtraID(%q) = %v, want %v", tc.id, got, tc.extra)
		}
	}
}

func TestMainIDOf(t *testing.T) {
	if got := MainIDOf("ABC123_a"); got != "ABC123" {
		t.Fatalf("MainIDOf(ABC123_a) = %q, want ABC123", got)
	}
	if got := MainIDOf("XY12_b"); got != "XY12" {
		t.Fatalf("MainIDOf(XY12_b) = %q, want XY12", got)
	}
}

func TestClassifyCachesParent(t *testing.T) {
	extra := TripItem{ItemID: "A1_a"}
	extra.Classify()
	if extra.ParentID != "A1" {
		t.Fatalf("extra parent = %q, want A1", extra.ParentID)
	}

	main := TripItem{ItemID: "A1", ParentID: "stale"}
	main.Classify()
	if main.ParentID != "" {
		t.Fatalf("main item should keep empty ParentID, got %q", main.ParentID)
	}
}

func TestGrossAbsentIsZero(t *testing.T) {
	var item TripItem
	if item.Gross() != 0 {
		t.Fatalf("nil gross should read as 0, got %v", item.Gross())
	}
	v := 99.5
	item.GrossAmount = &v
	if item.Gross() != 99.5 {
		t.Fatalf("gross = %v, want 99.5", item.Gross())
	}
}
