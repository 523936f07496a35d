package session

import (
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
)

func TestGateAuthHeader(t *testing.T) {
	gate, err := NewGate(NewMemoryStore())
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}

	if h := gate.AuthHeader(); len(h) != 0 {
		t.Errorf("expected empty header map before login, got %v", h)
	}

	if err := gate.SetCredential("tok-123"); err != nil {
		t.Fatalf("SetCredential() error = %v", err)
	}

	h := gate.AuthHeader()
	if got := h["Authorization"]; got != "Bearer tok-123" {
		t.Errorf("Authorization header = %q, want %q", got, "Bearer tok-123")
	}

	if err := gate.ClearCredential(); err != nil {
		t.Fatalf("ClearCredential() error = %v", err)
	}
	if h := gate.AuthHeader(); len(h) != 0 {
		t.Errorf("expected empty header map after clear, got %v", h)
	}
}

func TestGatePrimesFromStore(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Save("persisted"); err != nil {
		t.Fatal(err)
	}

	gate, err := NewGate(store)
	if err != nil {
		t.Fatalf("NewGate() error = %v", err)
	}
	if !gate.Authenticated() {
		t.Error("expected gate to be authenticated from stored token")
	}
	if got := gate.AuthHeader()["Authorization"]; got != "Bearer persisted" {
		t.Errorf("Authorization header = %q", got)
	}
}

func TestHandleUnauthorizedFiresOnce(t *testing.T) {
	store := NewMemoryStore()
	if err := store.Save("stale"); err != nil {
		t.Fatal(err)
	}
	gate, err := NewGate(store)
	if err != nil {
		t.Fatal(err)
	}

	var fired int32
	gate.OnSessionExpired = func() { atomic.AddInt32(&fired, 1) }

	// Simulate parallel requests all observing a 401.
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			gate.HandleUnauthorized()
		}()
	}
	wg.Wait()

	if got := atomic.LoadInt32(&fired); got != 1 {
		t.Errorf("OnSessionExpired fired %d times, want 1", got)
	}
	if gate.Authenticated() {
		t.Error("expected credential to be cleared")
	}
	if _, err := store.Load(); err != ErrNoToken {
		t.Errorf("store.Load() error = %v, want ErrNoToken", err)
	}
}

func TestHandleUnauthorizedRearmsAfterLogin(t *testing.T) {
	gate, err := NewGate(NewMemoryStore())
	if err != nil {
		t.Fatal(err)
	}

	var fired int
	gate.OnSessionExpired = func() { fired++ }

	gate.HandleUnauthorized()
	gate.HandleUnauthorized()
	if fired != 1 {
		t.Fatalf("fired = %d after first expiry, want 1", fired)
	}

	if err := gate.SetCredential("fresh"); err != nil {
		t.Fatal(err)
	}
	gate.HandleUnauthorized()
	if fired != 2 {
		t.Errorf("fired = %d after re-login and second expiry, want 2", fired)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	if _, err := store.Load(); err != ErrNoToken {
		t.Errorf("Load() on empty store error = %v, want ErrNoToken", err)
	}

	if err := store.Save("file-token"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "file-token" {
		t.Errorf("Load() = %q, want %q", got, "file-token")
	}

	if err := store.Save("overwritten"); err != nil {
		t.Fatal(err)
	}
	got, _ = store.Load()
	if got != "overwritten" {
		t.Errorf("Load() after overwrite = %q, want %q", got, "overwritten")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := store.Load(); err != ErrNoToken {
		t.Errorf("Load() after clear error = %v, want ErrNoToken", err)
	}

	// Clearing twice is fine.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear() error = %v", err)
	}
}

func TestKeyringStoreRoundTrip(t *testing.T) {
	mockKeyring(t)
	store := NewKeyringStore()

	if _, err := store.Load(); err != ErrNoToken {
		t.Errorf("Load() on empty keyring error = %v, want ErrNoToken", err)
	}

	if err := store.Save("keyring-token"); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got != "keyring-token" {
		t.Errorf("Load() = %q", got)
	}

	if err := store.Save(""); err == nil {
		t.Error("Save(\"\") expected error")
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, err := store.Load(); err != ErrNoToken {
		t.Errorf("Load() after clear error = %v, want ErrNoToken", err)
	}
}
