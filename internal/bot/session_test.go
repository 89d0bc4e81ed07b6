package bot

import (
	"context"
	"reflect"
	"testing"
)

func TestToggleTag(t *testing.T) {
	s := &Session{}

	if selected, ok := s.toggleTag(1, 2); !selected || !ok {
		t.Fatal("first toggle should select")
	}
	if selected, ok := s.toggleTag(2, 2); !selected || !ok {
		t.Fatal("second toggle should select")
	}

	// over the limit
	if _, ok := s.toggleTag(3, 2); ok {
		t.Fatal("toggle over the limit should be rejected")
	}

	// toggling an already selected tag removes it even at the limit
	if selected, ok := s.toggleTag(1, 2); selected || !ok {
		t.Fatal("toggle of a selected tag should deselect")
	}
	if !reflect.DeepEqual(s.SelectedTags, []int64{2}) {
		t.Fatalf("unexpected selection: %v", s.SelectedTags)
	}

	// and the freed slot can be reused
	if selected, ok := s.toggleTag(3, 2); !selected || !ok {
		t.Fatal("toggle into the freed slot should select")
	}
}

func TestMemorySessionStore(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	if sess, err := store.Get(ctx, 1); err != nil || sess != nil {
		t.Fatalf("expected no session, got %v, %v", sess, err)
	}

	orig := &Session{State: stateTaskTags, Title: "task", SelectedTags: []int64{1, 2}}
	if err := store.Set(ctx, 1, orig); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(got, orig) {
		t.Fatalf("got %+v want %+v", got, orig)
	}

	// mutating the returned copy must not affect the stored session
	got.SelectedTags[0] = 99
	again, _ := store.Get(ctx, 1)
	if again.SelectedTags[0] != 1 {
		t.Fatal("stored session was mutated through a returned copy")
	}

	if err := store.Clear(ctx, 1); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if sess, _ := store.Get(ctx, 1); sess != nil {
		t.Fatal("session survived clear")
	}
}

func TestMemorySessionStoreIsolatesChats(t *testing.T) {
	store := NewMemorySessionStore()
	ctx := context.Background()

	_ = store.Set(ctx, 1, &Session{State: stateTaskTitle})
	_ = store.Set(ctx, 2, &Session{State: stateTagName})

	a, _ := store.Get(ctx, 1)
	b, _ := store.Get(ctx, 2)
	if a.State != stateTaskTitle || b.State != stateTagName {
		t.Fatalf("sessions crossed chats: %+v %+v", a, b)
	}
}
