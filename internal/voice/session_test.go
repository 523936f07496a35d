package voice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"liftlog/internal/api"
	"liftlog/internal/session"
)

// scriptedDevice plays a fixed set of chunks and then waits for Stop, the
// way a real microphone keeps streaming until released.
type scriptedDevice struct {
	chunks     [][]byte
	startErr   error
	startDelay time.Duration

	mu      sync.Mutex
	starts  int
	stopped bool
	release chan struct{}
}

func (d *scriptedDevice) Start(ctx context.Context) (<-chan []byte, error) {
	time.Sleep(d.startDelay)
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.startErr != nil {
		return nil, d.startErr
	}
	d.starts++
	d.stopped = false
	d.release = make(chan struct{})
	release := d.release

	out := make(chan []byte)
	go func() {
		defer close(out)
		for _, chunk := range d.chunks {
			select {
			case out <- chunk:
			case <-ctx.Done():
				return
			}
		}
		select {
		case <-release:
		case <-ctx.Done():
		}
	}()
	return out, nil
}

func (d *scriptedDevice) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.stopped && d.release != nil {
		d.stopped = true
		close(d.release)
	}
	return nil
}

func (d *scriptedDevice) wasStopped() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.stopped
}

func (d *scriptedDevice) startCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.starts
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	store := session.NewMemoryStore()
	if err := store.Save("tok"); err != nil {
		t.Fatal(err)
	}
	gate, err := session.NewGate(store)
	if err != nil {
		t.Fatal(err)
	}
	return api.NewClient(server.URL, gate)
}

func voiceHandler(t *testing.T, gotBody *[]byte) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" || r.URL.Path != "/voice/log" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		file, _, err := r.FormFile("file")
		if err != nil {
			t.Errorf("multipart field missing: %v", err)
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		data, _ := io.ReadAll(file)
		*gotBody = data
		_ = json.NewEncoder(w).Encode(map[string]any{
			"transcript": "bench 3x5 at 100",
			"workout":    map[string]any{"id": 12, "date": "2024-06-01"},
		})
	}
}

func TestSessionStartStopUploads(t *testing.T) {
	var uploaded []byte
	client := newTestClient(t, voiceHandler(t, &uploaded))
	device := &scriptedDevice{chunks: [][]byte{[]byte("abc"), {}, []byte("def")}}
	sess := NewSession(client, device)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if got := sess.State(); got != StateRecording {
		t.Fatalf("state = %v, want recording", got)
	}

	result, err := sess.Stop(context.Background())
	if err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if !bytes.Equal(uploaded, []byte("abcdef")) {
		t.Errorf("uploaded %q, want chunks concatenated with empties dropped", uploaded)
	}
	if result.Transcript != "bench 3x5 at 100" {
		t.Errorf("transcript = %q", result.Transcript)
	}
	if result.Workout.ID != 12 {
		t.Errorf("workout id = %d", result.Workout.ID)
	}
	if !device.wasStopped() {
		t.Error("device was not released")
	}
	if got := sess.State(); got != StateIdle {
		t.Errorf("state after upload = %v, want idle", got)
	}
}

func TestSessionStartWhileRecordingIsNoop(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"transcript": "", "workout": map[string]any{"id": 1}})
	})
	device := &scriptedDevice{chunks: [][]byte{[]byte("x")}}
	sess := NewSession(client, device)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("second Start() error = %v, want no-op", err)
	}
	if got := device.startCount(); got != 1 {
		t.Errorf("device started %d times, want 1", got)
	}
	if _, err := sess.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestSessionConcurrentStartsAcquireDeviceOnce(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"transcript": "", "workout": map[string]any{"id": 1}})
	})
	// Slow acquisition widens the window between the idle check and the
	// device coming up; both presses land inside it.
	device := &scriptedDevice{chunks: [][]byte{[]byte("x")}, startDelay: 50 * time.Millisecond}
	sess := NewSession(client, device)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := sess.Start(context.Background()); err != nil {
				t.Errorf("Start() error = %v", err)
			}
		}()
	}
	wg.Wait()

	if got := device.startCount(); got != 1 {
		t.Errorf("device acquired %d times by overlapping Start calls, want 1", got)
	}
	if got := sess.State(); got != StateRecording {
		t.Errorf("state = %v, want recording", got)
	}
	if _, err := sess.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestSessionDeviceDeniedStaysIdle(t *testing.T) {
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		_ = json.NewEncoder(w).Encode(map[string]any{"transcript": "", "workout": map[string]any{"id": 1}})
	})
	device := &scriptedDevice{startErr: errors.New("permission denied")}
	sess := NewSession(client, device)

	if err := sess.Start(context.Background()); err == nil {
		t.Fatal("Start() should surface the device error")
	}
	if got := sess.State(); got != StateIdle {
		t.Errorf("state = %v, want idle after denial", got)
	}
	if requests != 0 {
		t.Errorf("denied start made %d requests, want 0", requests)
	}

	// A later grant must work without resetting anything.
	device.startErr = nil
	if err := sess.Start(context.Background()); err != nil {
		t.Fatalf("Start() after grant error = %v", err)
	}
	if err := sess.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestSessionZeroChunksStillUploads(t *testing.T) {
	var uploaded []byte
	requests := 0
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		voiceHandler(t, &uploaded)(w, r)
	})
	device := &scriptedDevice{}
	sess := NewSession(client, device)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Stop(context.Background()); err != nil {
		t.Fatalf("Stop() error = %v", err)
	}
	if requests != 1 {
		t.Fatalf("requests = %d, want the empty blob uploaded anyway", requests)
	}
	if len(uploaded) != 0 {
		t.Errorf("uploaded %d bytes, want 0", len(uploaded))
	}
}

func TestSessionBufferResetsBetweenGestures(t *testing.T) {
	var uploaded []byte
	client := newTestClient(t, voiceHandler(t, &uploaded))
	device := &scriptedDevice{chunks: [][]byte{[]byte("one")}}
	sess := NewSession(client, device)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}

	device.chunks = [][]byte{[]byte("two")}
	if err := sess.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if _, err := sess.Stop(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(uploaded, []byte("two")) {
		t.Errorf("second upload = %q, want only the second gesture's audio", uploaded)
	}
}

func TestSessionUnauthorizedUploadClearsGate(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	device := &scriptedDevice{chunks: [][]byte{[]byte("x")}}
	sess := NewSession(client, device)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	result, err := sess.Stop(context.Background())
	if !errors.Is(err, api.ErrUnauthorized) {
		t.Fatalf("error = %v, want ErrUnauthorized", err)
	}
	if result != nil {
		t.Error("no result expected on 401")
	}
	if client.Gate().Authenticated() {
		t.Error("gate should have cleared the credential")
	}
	if got := sess.State(); got != StateIdle {
		t.Errorf("state = %v, want idle so the next gesture can retry after login", got)
	}
}

func TestSessionUploadFailureSurfacesAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"detail":"audio too short"}`))
	})
	device := &scriptedDevice{chunks: [][]byte{[]byte("x")}}
	sess := NewSession(client, device)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	_, err := sess.Stop(context.Background())
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *api.Error", err)
	}
	if apiErr.Detail != "audio too short" {
		t.Errorf("detail = %q", apiErr.Detail)
	}
	if got := sess.State(); got != StateIdle {
		t.Errorf("state = %v, want idle after failure", got)
	}
}

func TestSessionStopWithoutStart(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})
	sess := NewSession(client, &scriptedDevice{})
	if _, err := sess.Stop(context.Background()); !errors.Is(err, ErrNotRecording) {
		t.Errorf("Stop() error = %v, want ErrNotRecording", err)
	}
}

func TestSessionCloseReleasesDevice(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"transcript": "", "workout": map[string]any{"id": 1}})
	})
	device := &scriptedDevice{chunks: [][]byte{[]byte("x")}}
	sess := NewSession(client, device)

	if err := sess.Start(context.Background()); err != nil {
		t.Fatal(err)
	}
	if err := sess.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !device.wasStopped() {
		t.Error("teardown mid-recording must release the device")
	}
	if got := sess.State(); got != StateIdle {
		t.Errorf("state = %v, want idle", got)
	}

	// Closing an idle session is a no-op.
	if err := sess.Close(); err != nil {
		t.Errorf("Close() on idle session error = %v", err)
	}
}
