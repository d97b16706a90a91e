package table

import (
	"errors"
	"reflect"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		cols    []string
		wantErr error
	}{
		{"Valid", []string{"a", "b"}, nil},
		{"SingleColumn", []string{"a"}, nil},
		{"Empty", nil, ErrNoColumns},
		{"Duplicate", []string{"a", "b", "a"}, ErrDuplicateColumn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cols...)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("New(%v) error = %v, want %v", tt.cols, err, tt.wantErr)
			}
		})
	}
}

func TestAppendAndValue(t *testing.T) {
	tab := MustNew("a", "b")
	tab.Append(Row{"a": "1", "b": "2", "ignored": "3"})
	tab.Append(Row{"a": "4"})

	if tab.Len() != 2 {
		t.Fatalf("Len = %d, want 2", tab.Len())
	}
	if got := tab.Value(0, "a"); got != "1" {
		t.Errorf("Value(0, a) = %q, want 1", got)
	}
	if got := tab.Value(0, "ignored"); got != "" {
		t.Errorf("keys outside the column set must be dropped, got %q", got)
	}
	if got := tab.Value(1, "b"); got != "" {
		t.Errorf("missing column must default to empty, got %q", got)
	}
	if got := tab.Value(5, "a"); got != "" {
		t.Errorf("out-of-range row must yield empty, got %q", got)
	}
}

func TestColumn(t *testing.T) {
	tab := MustNew("a", "b")
	tab.Append(Row{"a": "1", "b": "x"})
	tab.Append(Row{"a": "2", "b": "y"})

	vals, err := tab.Column("b")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(vals, []string{"x", "y"}) {
		t.Errorf("Column(b) = %v", vals)
	}

	if _, err := tab.Column("nope"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Column(nope) error = %v, want ErrUnknownColumn", err)
	}
}

func TestEnsureColumn(t *testing.T) {
	tab := MustNew("a")
	tab.Append(Row{"a": "1"})
	tab.Append(Row{"a": "2"})

	tab.EnsureColumn("extra")
	if !tab.HasColumn("extra") {
		t.Fatal("extra column missing")
	}
	vals, _ := tab.Column("extra")
	if !reflect.DeepEqual(vals, []string{"", ""}) {
		t.Errorf("new column must be empty on every row, got %v", vals)
	}

	// Re-ensuring an existing column must not disturb values.
	_ = tab.Set(0, "extra", "v")
	tab.EnsureColumn("extra")
	if got := tab.Value(0, "extra"); got != "v" {
		t.Errorf("EnsureColumn clobbered value: %q", got)
	}
	if got := len(tab.Columns()); got != 2 {
		t.Errorf("columns = %d, want 2", got)
	}
}

func TestSet(t *testing.T) {
	tab := MustNew("a")
	tab.Append(Row{"a": "1"})

	if err := tab.Set(0, "a", "9"); err != nil {
		t.Fatal(err)
	}
	if got := tab.Value(0, "a"); got != "9" {
		t.Errorf("Value = %q, want 9", got)
	}
	if err := tab.Set(0, "nope", "x"); !errors.Is(err, ErrUnknownColumn) {
		t.Errorf("Set unknown column error = %v", err)
	}
	if err := tab.Set(9, "a", "x"); err == nil {
		t.Error("Set out-of-range row: expected error")
	}
}

func TestCloneIsIndependent(t *testing.T) {
	tab := MustNew("a")
	tab.Append(Row{"a": "1"})

	c := tab.Clone()
	_ = c.Set(0, "a", "changed")
	c.EnsureColumn("b")

	if got := tab.Value(0, "a"); got != "1" {
		t.Errorf("clone mutation leaked into original: %q", got)
	}
	if tab.HasColumn("b") {
		t.Error("clone column addition leaked into original")
	}
}

func TestRecords(t *testing.T) {
	tab := MustNew("a", "b")
	tab.Append(Row{"a": "1", "b": "x"})

	recs := tab.Records()
	want := []map[string]string{{"a": "1", "b": "x"}}
	if !reflect.DeepEqual(recs, want) {
		t.Errorf("Records = %v, want %v", recs, want)
	}
}
