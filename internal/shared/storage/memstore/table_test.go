package memstore

import (
	"context"
	"errors"
	"testing"
)

type row struct {
	ID   string
	Rank int
}

func TestTableScopesByOwner(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[row]()

	if err := tbl.Put(ctx, "u-1", "a", row{ID: "a", Rank: 2}); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if _, err := tbl.Get(ctx, "u-2", "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected other user to get ErrNotFound, got %v", err)
	}
	if err := tbl.Put(ctx, "u-2", "a", row{ID: "a"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected other user overwrite to fail, got %v", err)
	}
	if err := tbl.Replace(ctx, "u-2", "a", row{ID: "a"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected other user replace to fail, got %v", err)
	}
	if err := tbl.Delete(ctx, "u-2", "a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected other user delete to fail, got %v", err)
	}
	got, err := tbl.Get(ctx, "u-1", "a")
	if err != nil || got.Rank != 2 {
		t.Fatalf("expected owner to read row, got %+v, %v", got, err)
	}
}

func TestTableListSortsAndWindows(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable[row]()
	for i, id := range []string{"a", "b", "c", "d"} {
		_ = tbl.Put(ctx, "u-1", id, row{ID: id, Rank: i})
	}
	_ = tbl.Put(ctx, "u-2", "z", row{ID: "z", Rank: 99})

	byRankDesc := func(a, b row) bool { return a.Rank > b.Rank }
	items, err := tbl.List(ctx, "u-1", nil, byRankDesc, 2, 1)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(items) != 2 || items[0].ID != "c" || items[1].ID != "b" {
		t.Fatalf("unexpected window %+v", items)
	}

	even := func(r row) bool { return r.Rank%2 == 0 }
	items, _ = tbl.List(ctx, "u-1", even, byRankDesc, 10, 0)
	if len(items) != 2 || items[0].ID != "c" {
		t.Fatalf("unexpected filtered list %+v", items)
	}

	items, _ = tbl.List(ctx, "u-1", nil, byRankDesc, 10, 10)
	if len(items) != 0 {
		t.Fatalf("expected empty page past the end, got %+v", items)
	}
}
