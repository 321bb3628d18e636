package audit

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreList(t *testing.T) {
	store := NewMemoryStore()
	base := time.Date(2030, 3, 4, 12, 0, 0, 0, time.UTC)
	tick := 0
	store.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * 24 * time.Hour)
	}

	ctx := context.Background()
	for _, ev := range []Event{
		{ActorID: "e1", Action: ActionBlocked, Metadata: map[string]any{"date": "2030-03-05"}},
		{ActorID: "e1", Action: ActionUnblocked},
		{ActorID: "e2", Action: ActionBlocked},
		{ActorID: "e1", Action: ActionBlocked},
	} {
		if err := store.Log(ctx, ev); err != nil {
			t.Fatalf("log: %v", err)
		}
	}

	logs, total, err := store.List(ctx, Query{ActorID: "e1", Limit: 10})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if total != 3 || len(logs) != 3 {
		t.Fatalf("expected 3 rows for e1, got total=%d len=%d", total, len(logs))
	}
	if logs[0].ID != 4 || logs[2].ID != 1 {
		t.Fatalf("expected newest first, got ids %d..%d", logs[0].ID, logs[2].ID)
	}
	if logs[2].Metadata != `{"date":"2030-03-05"}` {
		t.Fatalf("metadata not encoded: %q", logs[2].Metadata)
	}

	// Day 1 and 2 fall in [Mar 5, Mar 7).
	logs, total, _ = store.List(ctx, Query{
		ActorID: "e1",
		From:    time.Date(2030, 3, 5, 0, 0, 0, 0, time.UTC),
		To:      time.Date(2030, 3, 7, 0, 0, 0, 0, time.UTC),
		Limit:   10,
	})
	if total != 2 || logs[0].Action != ActionUnblocked {
		t.Fatalf("range: total=%d logs=%+v", total, logs)
	}

	logs, total, _ = store.List(ctx, Query{ActorID: "e1", Action: ActionBlocked, Limit: 1, Offset: 1})
	if total != 2 || len(logs) != 1 || logs[0].ID != 1 {
		t.Fatalf("paged: total=%d logs=%+v", total, logs)
	}

	logs, _, _ = store.List(ctx, Query{ActorID: "e1", Limit: 10, Offset: 10})
	if logs == nil || len(logs) != 0 {
		t.Fatalf("offset past the end should be empty, got %+v", logs)
	}
}
