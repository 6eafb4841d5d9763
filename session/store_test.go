package session

import (
	"os"
	"path/filepath"
	"testing"

	"evcharge/booking"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store := testStore(t)

	if err := store.Save("tok-123", booking.RoleOperator, "199012345678", "st-1"); err != nil {
		t.Fatalf("save: %v", err)
	}

	sess, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !ok {
		t.Fatal("expected a stored session")
	}
	if sess.Token != "tok-123" || sess.Role != booking.RoleOperator {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.NIC != "199012345678" {
		t.Fatalf("nic = %q", sess.NIC)
	}
	if sess.StationID != "st-1" {
		t.Fatalf("operator session should keep station id, got %q", sess.StationID)
	}
	if got := sess.AuthorizationHeader(); got != "Bearer tok-123" {
		t.Fatalf("authorization header = %q", got)
	}
}

func TestSaveDropsStationForOwner(t *testing.T) {
	store := testStore(t)

	if err := store.Save("tok", booking.RoleOwner, "nic-1", "st-9"); err != nil {
		t.Fatalf("save: %v", err)
	}
	sess, ok, err := store.Load()
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if sess.StationID != "" {
		t.Fatalf("owner session must not carry a station id, got %q", sess.StationID)
	}
}

func TestSaveRejectsBadInput(t *testing.T) {
	store := testStore(t)

	if err := store.Save("", booking.RoleOwner, "nic", ""); err == nil {
		t.Error("empty token should be rejected")
	}
	if err := store.Save("   ", booking.RoleOwner, "nic", ""); err == nil {
		t.Error("blank token should be rejected")
	}
	if err := store.Save("tok", booking.Role("admin"), "nic", ""); err == nil {
		t.Error("unknown role should be rejected")
	}
	if _, ok, err := store.Load(); err != nil || ok {
		t.Fatalf("nothing should have been written: ok=%v err=%v", ok, err)
	}
}

func TestLoadWithoutSavedSession(t *testing.T) {
	store := testStore(t)

	sess, ok, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if ok {
		t.Fatalf("expected absent session, got %+v", sess)
	}
}

func TestClearRemovesSession(t *testing.T) {
	store := testStore(t)

	if err := store.Save("tok", booking.RoleOwner, "nic", ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok, _ := store.Load(); ok {
		t.Fatal("session should be gone after clear")
	}
	// Clearing twice is not an error.
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
}

func TestSaveLeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(filepath.Join(dir, "session.json"))

	if err := store.Save("tok", booking.RoleOwner, "nic", ""); err != nil {
		t.Fatalf("save: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "session.json" {
		t.Fatalf("unexpected directory contents: %v", entries)
	}
}
