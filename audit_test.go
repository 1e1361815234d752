package goSession

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"sync/atomic"
	"testing"
	"time"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

type gateSink struct {
	gate chan struct{}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func TestAuditDispatcherDisabled(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: false}, &countingSink{})
	if d != nil {
		t.Fatal("disabled config produced a dispatcher")
	}

	// Nil receivers are inert.
	d.Emit(context.Background(), AuditEvent{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("nil dispatcher reports drops")
	}
}

func TestAuditDispatcherDeliversAndDrains(t *testing.T) {
	sink := &countingSink{}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 64}, sink)

	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})
	}
	d.Close()

	if got := sink.count.Load(); got != 10 {
		t.Fatalf("delivered = %d, want 10 (close must drain)", got)
	}
}

func TestAuditDispatcherDropsWhenFull(t *testing.T) {
	sink := &gateSink{gate: make(chan struct{})}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)
	defer func() {
		close(sink.gate)
		d.Close()
	}()

	// One event is held by the blocked sink, one fills the buffer, the
	// rest must drop rather than block.
	for i := 0; i < 10; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})
	}

	waitFor(t, time.Second, func() bool {
		return d.Dropped() > 0
	})
}

func TestAuditDispatcherBlockingEmitHonorsContext(t *testing.T) {
	sink := &gateSink{gate: make(chan struct{})}
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: false}, sink)
	defer func() {
		close(sink.gate)
		d.Close()
	}()

	d.Emit(context.Background(), AuditEvent{})
	d.Emit(context.Background(), AuditEvent{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan struct{})
	go func() {
		d.Emit(ctx, AuditEvent{})
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit did not return after context cancellation")
	}
}

func TestJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		EventID:   "evt-1",
		EventType: auditEventLoginSuccess,
		Username:  "alice",
		Success:   true,
	})
	sink.Emit(context.Background(), AuditEvent{
		EventID:   "evt-2",
		EventType: auditEventLogout,
		Reason:    LogoutUserInitiated,
		Success:   true,
	})

	scanner := bufio.NewScanner(&buf)
	var lines int
	for scanner.Scan() {
		var event AuditEvent
		if err := json.Unmarshal(scanner.Bytes(), &event); err != nil {
			t.Fatalf("line %d not valid JSON: %v", lines+1, err)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("lines = %d, want 2", lines)
	}
}

func TestLoginEmitsAuditEvents(t *testing.T) {
	sink := &captureSink{}
	store, cleanup := newTestStore(t, &fakeBackend{}, withSink(sink))
	defer cleanup()
	store.Hydrate(context.Background())

	if _, err := store.LoginWithPassword(context.Background(), "alice", "pw"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	waitFor(t, time.Second, func() bool {
		events := sink.byType(auditEventLoginSuccess)
		if len(events) != 1 {
			return false
		}
		e := events[0]
		return e.Success && e.Username == "alice" && e.UserID == "user-1" &&
			e.EventID != "" && e.Metadata["access_level"] == "admin"
	})
}

func TestAuditErrorCodeMapping(t *testing.T) {
	tests := []struct {
		err  error
		want AuditErrorCode
	}{
		{nil, ""},
		{ErrInvalidCredentials, auditErrInvalidCredentials},
		{ErrRateLimited, auditErrRateLimited},
		{ErrNetworkUnavailable, auditErrNetwork},
		{ErrMalformedResponse, auditErrMalformedResponse},
		{ErrLoginFailed, auditErrLoginFailed},
		{ErrRefreshFailed, auditErrRefreshFailed},
		{ErrCorruptState, auditErrCorruptState},
		{context.DeadlineExceeded, auditErrInternal},
	}

	for _, tc := range tests {
		if got := auditErrorCode(tc.err); got != tc.want {
			t.Fatalf("auditErrorCode(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
