package db

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/balkashynov/horas/internal/models"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "horas.db"), log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createItem(t *testing.T, s *Store, owner string, ref time.Time) *models.WorkItem {
	t.Helper()
	item := &models.WorkItem{
		OwnerID:     owner,
		Name:        "Landing page",
		ReferenceAt: ref,
		Status:      models.WorkItemOpen,
	}
	if err := s.CreateWorkItem(context.Background(), item); err != nil {
		t.Fatalf("CreateWorkItem: %v", err)
	}
	return item
}

func TestFindWorkItemScopedToOwner(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	item := createItem(t, s, "alice", time.Now())

	if item.ID == "" {
		t.Fatal("expected id to be assigned on create")
	}
	got, err := s.FindWorkItem(ctx, item.ID, "alice")
	if err != nil {
		t.Fatalf("FindWorkItem: %v", err)
	}
	if got.Name != "Landing page" {
		t.Errorf("Name = %q", got.Name)
	}

	if _, err := s.FindWorkItem(ctx, item.ID, "bob"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindWorkItem for another owner err = %v, want ErrNotFound", err)
	}
	if _, err := s.FindWorkItem(ctx, "missing", "alice"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindWorkItem missing err = %v, want ErrNotFound", err)
	}
}

func TestOneActiveSessionPerWorkItem(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	item := createItem(t, s, "alice", time.Now())

	active, err := s.FindActiveSession(ctx, item.ID)
	if err != nil || active != nil {
		t.Fatalf("FindActiveSession on fresh item = %v, %v; want nil, nil", active, err)
	}

	first := &models.Session{WorkItemID: item.ID, StartedAt: time.Now(), Status: models.SessionActive}
	if err := s.CreateSession(ctx, first); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	second := &models.Session{WorkItemID: item.ID, StartedAt: time.Now(), Status: models.SessionActive}
	if err := s.CreateSession(ctx, second); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("second active CreateSession err = %v, want ErrConflict", err)
	}

	// A paused session alongside the active one is fine.
	acc := int64(10)
	paused := &models.Session{WorkItemID: item.ID, StartedAt: time.Now(), Status: models.SessionPaused, AccumulatedSeconds: &acc}
	if err := s.CreateSession(ctx, paused); err != nil {
		t.Fatalf("CreateSession paused: %v", err)
	}

	// Resuming it while the other is active hits the index.
	paused.Status = models.SessionActive
	paused.AccumulatedSeconds = nil
	if err := s.UpdateSession(ctx, paused); !errors.Is(err, models.ErrConflict) {
		t.Fatalf("UpdateSession to second active err = %v, want ErrConflict", err)
	}

	active, err = s.FindActiveSession(ctx, item.ID)
	if err != nil || active == nil || active.ID != first.ID {
		t.Fatalf("FindActiveSession = %v, %v; want %s", active, err, first.ID)
	}
}

func TestUpdateSessionClearsAccumulated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	item := createItem(t, s, "alice", time.Now())

	acc := int64(42)
	session := &models.Session{WorkItemID: item.ID, StartedAt: time.Now(), Status: models.SessionPaused, AccumulatedSeconds: &acc}
	if err := s.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	session.AccumulatedSeconds = nil
	session.Status = models.SessionActive
	if err := s.UpdateSession(ctx, session); err != nil {
		t.Fatalf("UpdateSession: %v", err)
	}

	got, err := s.FindSession(ctx, session.ID, "alice")
	if err != nil {
		t.Fatalf("FindSession: %v", err)
	}
	if got.AccumulatedSeconds != nil {
		t.Errorf("AccumulatedSeconds = %d, want NULL", *got.AccumulatedSeconds)
	}
	if got.WorkItem == nil || got.WorkItem.ID != item.ID {
		t.Errorf("FindSession should preload the work item")
	}
	if _, err := s.FindSession(ctx, session.ID, "bob"); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("FindSession for another owner err = %v, want ErrNotFound", err)
	}
}

func TestDeleteWorkItemRemovesSessions(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	item := createItem(t, s, "alice", time.Now())

	for i := 0; i < 3; i++ {
		acc := int64(60)
		end := time.Now()
		session := &models.Session{WorkItemID: item.ID, StartedAt: end.Add(-time.Minute), FinishedAt: &end, AccumulatedSeconds: &acc, Status: models.SessionFinished}
		if err := s.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession: %v", err)
		}
	}

	if err := s.DeleteWorkItem(ctx, item.ID); err != nil {
		t.Fatalf("DeleteWorkItem: %v", err)
	}

	sessions, err := s.ListSessionsForWorkItem(ctx, item.ID)
	if err != nil {
		t.Fatalf("ListSessionsForWorkItem: %v", err)
	}
	if len(sessions) != 0 {
		t.Errorf("%d sessions survived their work item", len(sessions))
	}
	if err := s.DeleteWorkItem(ctx, item.ID); !errors.Is(err, models.ErrNotFound) {
		t.Errorf("second DeleteWorkItem err = %v, want ErrNotFound", err)
	}
}

func TestListWorkItemsInRange(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	loc := time.FixedZone("BRT", -3*60*60)

	from := time.Date(2026, 2, 22, 0, 0, 0, 0, loc)
	to := time.Date(2026, 2, 28, 23, 59, 59, 999_999_999, loc)

	inside := createItem(t, s, "alice", from)
	createItem(t, s, "alice", to.Add(time.Nanosecond))
	createItem(t, s, "alice", from.Add(-time.Second))
	createItem(t, s, "bob", from.Add(time.Hour))
	last := createItem(t, s, "alice", time.Date(2026, 2, 28, 23, 59, 59, 0, loc))

	items, err := s.ListWorkItemsInRange(ctx, "alice", from, to)
	if err != nil {
		t.Fatalf("ListWorkItemsInRange: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].ID != inside.ID || items[1].ID != last.ID {
		t.Errorf("unexpected items %s, %s", items[0].ID, items[1].ID)
	}
}

func TestConfigLazyCreateAndUpsert(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	cfg, err := s.GetConfig(ctx, "alice")
	if err != nil {
		t.Fatalf("GetConfig: %v", err)
	}
	if cfg.HourlyRate != 0 || cfg.ID == "" {
		t.Errorf("lazy config = %+v, want zero rate with id", cfg)
	}

	if _, err := s.UpsertConfig(ctx, "alice", 120.5); err != nil {
		t.Fatalf("UpsertConfig: %v", err)
	}
	updated, err := s.UpsertConfig(ctx, "alice", 150)
	if err != nil {
		t.Fatalf("UpsertConfig: %v", err)
	}
	if updated.HourlyRate != 150 || updated.ID != cfg.ID {
		t.Errorf("upserted config = %+v, want rate 150 on id %s", updated, cfg.ID)
	}

	other, err := s.UpsertConfig(ctx, "bob", 10)
	if err != nil {
		t.Fatalf("UpsertConfig bob: %v", err)
	}
	if other.ID == cfg.ID {
		t.Error("owners must not share a config")
	}
}
