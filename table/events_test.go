package table_test

import (
	"testing"

	"tstyle/table"
)

func TestEditFeed_OrderAndCancel(t *testing.T) {
	var got []string
	var f table.EditFeed

	cancelA := f.Subscribe(func(table.Edit) { got = append(got, "a") })
	f.Subscribe(func(table.Edit) { got = append(got, "b") })

	f.Notify(table.Edit{Kind: table.EditRealign})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("expected delivery in subscription order, got %v", got)
	}

	cancelA()
	cancelA() // idempotent
	got = nil
	f.Notify(table.Edit{Kind: table.EditRealign})
	if len(got) != 1 || got[0] != "b" {
		t.Errorf("expected only the remaining subscriber, got %v", got)
	}
}

func TestEditFeed_CancelDuringNotify(t *testing.T) {
	var f table.EditFeed
	calls := 0
	var cancel func()
	cancel = f.Subscribe(func(table.Edit) {
		calls++
		cancel()
	})
	f.Subscribe(func(table.Edit) { calls++ })

	f.Notify(table.Edit{})
	if calls != 2 {
		t.Fatalf("expected both handlers for the in-flight delivery, got %d", calls)
	}
	f.Notify(table.Edit{})
	if calls != 3 {
		t.Errorf("expected the cancelled handler to be gone, got %d calls", calls)
	}
}

func TestEditKind_String(t *testing.T) {
	tests := []struct {
		kind table.EditKind
		want string
	}{
		{table.EditRowInsert, "row-insert"},
		{table.EditRowDelete, "row-delete"},
		{table.EditColumnInsert, "column-insert"},
		{table.EditColumnDelete, "column-delete"},
		{table.EditRealign, "realign"},
	}
	for _, tc := range tests {
		if got := tc.kind.String(); got != tc.want {
			t.Errorf("expected %s, got %s", tc.want, got)
		}
	}
}

func TestDeclarations_Empty(t *testing.T) {
	var d table.Declarations
	if !d.Empty() {
		t.Error("zero declarations must be empty")
	}
	d.Striped = true
	if d.Empty() {
		t.Error("striped declarations are not empty")
	}
}
