package table

import (
	"strconv"
)

// EditKind enumerates structural table edits that invalidate styling.
type EditKind int

const (
	EditRowInsert EditKind = iota
	EditRowDelete
	EditColumnInsert
	EditColumnDelete
	EditRealign
)

// String returns the edit kind name.
func (k EditKind) String() string {
	switch k {
	case EditRowInsert:
		return "row-insert"
	case EditRowDelete:
		return "row-delete"
	case EditColumnInsert:
		return "column-insert"
	case EditColumnDelete:
		return "column-delete"
	case EditRealign:
		return "realign"
	default:
		return "edit(" + strconv.Itoa(int(k)) + ")"
	}
}

// Edit describes one structural change to a table. Index is the affected
// 1-based row or column; realignment carries no index.
type Edit struct {
	Kind  EditKind
	Index int
}

// Notifier delivers structural-edit notifications to subscribers. Delivery
// must be serial: a handler finishes before the next notification starts.
type Notifier interface {
	Subscribe(fn func(Edit)) (cancel func())
}

// EditFeed is a minimal synchronous Notifier for hosts: subscribers run in
// subscription order on the notifying goroutine. Not safe for concurrent
// use, matching the engine's single-threaded model.
type EditFeed struct {
	subs   []feedSub
	nextID int
}

type feedSub struct {
	id int
	fn func(Edit)
}

// Subscribe registers fn and returns its cancel func. Cancel is idempotent.
func (f *EditFeed) Subscribe(fn func(Edit)) (cancel func()) {
	f.nextID++
	id := f.nextID
	f.subs = append(f.subs, feedSub{id: id, fn: fn})
	return func() {
		for i := range f.subs {
			if f.subs[i].id == id {
				f.subs = append(f.subs[:i], f.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify delivers e to every subscriber in order. The subscriber list is
// snapshotted first so handlers may subscribe or cancel during delivery.
func (f *EditFeed) Notify(e Edit) {
	subs := make([]feedSub, len(f.subs))
	copy(subs, f.subs)
	for _, s := range subs {
		s.fn(e)
	}
}
