package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/eventpulse/feedback-backend/internal/store"
)

func newEventService() *EventService {
	return NewEventService(store.NewEvents(nil))
}

func TestEventService_CreateAndGet(t *testing.T) {
	svc := newEventService()
	ctx := context.Background()

	ev, err := svc.CreateEvent(ctx, "org-1", NewEventInput{
		Name:     "  GopherCon  ",
		Location: "Berlin",
		Date:     time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if ev.Name != "GopherCon" {
		t.Fatalf("name not trimmed: %q", ev.Name)
	}
	if ev.OrganizerID != "org-1" || !ev.IsActive {
		t.Fatalf("unexpected event: %+v", ev)
	}

	got, err := svc.GetEvent(ctx, ev.ID)
	if err != nil {
		t.Fatalf("GetEvent: %v", err)
	}
	if got.ID != ev.ID {
		t.Fatalf("GetEvent returned wrong event")
	}
}

func TestEventService_CreateValidation(t *testing.T) {
	svc := newEventService()
	ctx := context.Background()

	if _, err := svc.CreateEvent(ctx, "org-1", NewEventInput{Name: "   "}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("blank name: err = %v, want ErrInvalidEvent", err)
	}
	if _, err := svc.CreateEvent(ctx, "", NewEventInput{Name: "x"}); !errors.Is(err, ErrInvalidEvent) {
		t.Fatalf("missing organizer: err = %v, want ErrInvalidEvent", err)
	}
}

func TestEventService_GetUnknown(t *testing.T) {
	svc := newEventService()
	if _, err := svc.GetEvent(context.Background(), "missing"); !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("err = %v, want ErrEventNotFound", err)
	}
}

func TestEventService_ListScopedToCaller(t *testing.T) {
	svc := newEventService()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := svc.CreateEvent(ctx, "org-1", NewEventInput{Name: fmt.Sprintf("ev-%d", i)}); err != nil {
			t.Fatalf("CreateEvent %d: %v", i, err)
		}
	}
	if _, err := svc.CreateEvent(ctx, "org-2", NewEventInput{Name: "other"}); err != nil {
		t.Fatalf("CreateEvent other: %v", err)
	}

	// An organizer only sees their own events; the demo event and org-2's
	// event stay invisible. Limit and offset defaults apply.
	items, total, err := svc.ListEvents(ctx, "org-1", "organizer", 0, -5)
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	for _, ev := range items {
		if ev.OrganizerID != "org-1" {
			t.Fatalf("foreign event leaked into listing: %+v", ev)
		}
	}

	// Admins see everyone's events, including the pre-seeded demo event.
	_, total, err = svc.ListEvents(ctx, "whoever", RoleAdmin, 0, 0)
	if err != nil {
		t.Fatalf("ListEvents admin: %v", err)
	}
	if total != 5 {
		t.Fatalf("admin total = %d, want 5", total)
	}

	page, _, err := svc.ListEvents(ctx, "org-1", "organizer", 2, 0)
	if err != nil {
		t.Fatalf("ListEvents page: %v", err)
	}
	if len(page) != 2 {
		t.Fatalf("page = %d, want 2", len(page))
	}
}
