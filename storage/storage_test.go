package storage

import (
	"strings"
	"testing"
)

func TestStorageOrder(t *testing.T) {
	st := NewStorage()
	st.Accept("G04 one*")
	st.Accept("")
	st.Accept("G04 two*")
	if st.Len() != 2 {
		t.Fatalf("len %d, want 2 (empty line kept?)", st.Len())
	}
	if s := st.String(); s != "G04 one*" {
		t.Fatalf("first line %q", s)
	}
	if s := st.String(); s != "G04 two*" {
		t.Fatalf("second line %q", s)
	}
	if s := st.String(); s != "" {
		t.Fatalf("exhausted storage returned %q", s)
	}
	st.ResetPos()
	if s := st.String(); s != "G04 one*" {
		t.Fatalf("after reset got %q", s)
	}
}

func TestStorageFeed(t *testing.T) {
	st := NewStorage()
	err := st.Feed(strings.NewReader("X100D02*\r\nX200D01*\n\nM02*\n"))
	if err != nil {
		t.Fatalf("Feed: %v", err)
	}
	got := st.ToArray()
	want := []string{"X100D02*", "X200D01*", "M02*"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("line %d: got %q, want %q", i, got[i], want[i])
		}
	}
}
