package voice

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"liftlog/internal/api"
	"liftlog/internal/logger"
)

// State is the capture lifecycle position. The machine runs
// Idle → Recording → Uploading and then back to Idle so the next gesture
// can start fresh, whether the upload succeeded or failed.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateUploading
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateUploading:
		return "uploading"
	default:
		return "idle"
	}
}

// ErrNotRecording is returned by Stop when no gesture is in progress.
var ErrNotRecording = errors.New("not recording")

// ErrBusy is returned by Start while a previous upload is still in flight.
var ErrBusy = errors.New("upload in progress")

// Session drives one push-to-talk control: at most one recording is active
// per session, and the device is released on every exit path.
type Session struct {
	client *api.Client
	device Device

	mu          sync.Mutex
	state       State
	chunks      [][]byte
	cancel      context.CancelFunc
	collectDone chan struct{}
}

func NewSession(client *api.Client, device Device) *Session {
	return &Session{client: client, device: device}
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Start acquires the device and begins buffering chunks. Starting while
// already recording is a no-op so a repeated press cannot double-acquire
// the microphone. Device failure surfaces an error and stays Idle.
func (s *Session) Start(ctx context.Context) error {
	// The state check and the device acquisition stay under one lock so two
	// overlapping presses cannot both pass the Idle guard and acquire the
	// device twice.
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateRecording:
		return nil
	case StateUploading:
		return ErrBusy
	}

	captureCtx, cancel := context.WithCancel(ctx)
	out, err := s.device.Start(captureCtx)
	if err != nil {
		cancel()
		return fmt.Errorf("could not start recording: %w", err)
	}

	s.state = StateRecording
	s.chunks = nil // fresh buffer for every gesture
	s.cancel = cancel
	s.collectDone = make(chan struct{})

	go s.collect(out, s.collectDone)
	return nil
}

// collect appends every non-empty chunk in arrival order until the device
// channel closes.
func (s *Session) collect(out <-chan []byte, done chan struct{}) {
	defer close(done)
	for chunk := range out {
		if len(chunk) == 0 {
			continue
		}
		s.mu.Lock()
		s.chunks = append(s.chunks, chunk)
		s.mu.Unlock()
	}
}

// Stop ends the gesture: releases the device, assembles the buffered chunks
// into one artifact and uploads it. The artifact is discarded afterwards
// whatever the outcome. A recording released with zero captured chunks
// still uploads an empty blob; the backend owns that rejection.
func (s *Session) Stop(ctx context.Context) (*api.VoiceLogResult, error) {
	s.mu.Lock()
	if s.state != StateRecording {
		s.mu.Unlock()
		return nil, ErrNotRecording
	}
	s.state = StateUploading
	done := s.collectDone
	s.mu.Unlock()

	if err := s.device.Stop(); err != nil {
		logger.Warn("device stop failed", "error", err)
	}
	<-done // drain in-flight chunks before assembling

	s.mu.Lock()
	var size int
	for _, chunk := range s.chunks {
		size += len(chunk)
	}
	blob := make([]byte, 0, size)
	for _, chunk := range s.chunks {
		blob = append(blob, chunk...)
	}
	s.chunks = nil
	cancel := s.cancel
	s.cancel = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	logger.Debug("uploading recording", "bytes", len(blob))

	result, err := s.client.VoiceLog(ctx, blob)

	s.mu.Lock()
	s.state = StateIdle
	s.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return result, nil
}

// Close tears the session down. A recording still in progress is
// force-stopped so the device is never leaked; the capture is uploaded the
// same way a normal release would, with the result discarded.
func (s *Session) Close() error {
	s.mu.Lock()
	recording := s.state == StateRecording
	s.mu.Unlock()
	if !recording {
		return nil
	}
	_, err := s.Stop(context.Background())
	if err != nil && !errors.Is(err, ErrNotRecording) {
		return err
	}
	return nil
}
