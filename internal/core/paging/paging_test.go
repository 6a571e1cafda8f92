package paging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"domamarket/internal/core/mapper"
)

// upstream serves total names through the real page decoder, counting calls
func upstream(total int, calls *int) Fetch[mapper.Name] {
	return func(_ context.Context, w mapper.Window) (mapper.Page[mapper.Name], error) {
		*calls++
		var items []string
		for i := w.Skip; i < total && i < w.Skip+w.Take; i++ {
			items = append(items, fmt.Sprintf(`{"name":"n%d.ai"}`, i))
		}
		hasNext := w.Skip+len(items) < total
		raw := fmt.Sprintf(`{"items":[%s],"totalCount":%d,"hasNextPage":%v}`, strings.Join(items, ","), total, hasNext)
		return mapper.DecodePage[mapper.Name]("names", json.RawMessage(raw), w)
	}
}

func TestAdvance_ThirtyByTwelve(t *testing.T) {
	t.Parallel()
	calls := 0
	fetch := upstream(30, &calls)

	var s State[mapper.Name]
	var sizes []int
	var next []bool
	for !s.Done {
		before := len(s.Items)
		if err := Advance(context.Background(), &s, 12, fetch); err != nil {
			t.Fatal(err)
		}
		sizes = append(sizes, len(s.Items)-before)
		next = append(next, s.LastHasNext)
	}
	if fmt.Sprint(sizes) != "[12 12 6]" || fmt.Sprint(next) != "[true true false]" {
		t.Fatalf("sizes=%v hasNext=%v", sizes, next)
	}
	if calls != 3 || s.Pages != 3 || len(s.Items) != 30 || s.Skip != 36 {
		t.Fatalf("calls=%d state=%+v", calls, s)
	}
	if s.Items[29].Name != "n29.ai" {
		t.Fatalf("last = %s", s.Items[29].Name)
	}

	if err := Advance(context.Background(), &s, 12, fetch); !errors.Is(err, ErrExhausted) || calls != 3 {
		t.Fatalf("exhausted: err=%v calls=%d", err, calls)
	}
}

func TestAdvance_EmptyPageIsDone(t *testing.T) {
	t.Parallel()
	fetch := func(context.Context, mapper.Window) (mapper.Page[mapper.Name], error) {
		return mapper.Page[mapper.Name]{Items: []mapper.Name{}, HasNextPage: true}, nil
	}
	var s State[mapper.Name]
	if err := Advance(context.Background(), &s, 5, fetch); err != nil || !s.Done {
		t.Fatalf("err=%v state=%+v", err, s)
	}
}

func TestAdvance_ErrorLeavesState(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	fetch := func(context.Context, mapper.Window) (mapper.Page[mapper.Name], error) {
		return mapper.Page[mapper.Name]{}, boom
	}
	s := State[mapper.Name]{Skip: 12, Pages: 1}
	if err := Advance(context.Background(), &s, 12, fetch); !errors.Is(err, boom) {
		t.Fatal(err)
	}
	if s.Skip != 12 || s.Pages != 1 || s.Done {
		t.Fatalf("state moved: %+v", s)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Advance(ctx, &s, 12, fetch); !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled ctx: %v", err)
	}
}

func TestCollect(t *testing.T) {
	t.Parallel()
	calls := 0
	all, err := Collect(context.Background(), 12, 0, upstream(30, &calls))
	if err != nil || len(all) != 30 || calls != 3 {
		t.Fatalf("all: n=%d calls=%d err=%v", len(all), calls, err)
	}

	calls = 0
	some, err := Collect(context.Background(), 12, 15, upstream(30, &calls))
	if err != nil || len(some) != 15 || calls != 2 {
		t.Fatalf("limited: n=%d calls=%d err=%v", len(some), calls, err)
	}
}
