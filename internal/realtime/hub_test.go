package realtime

import (
	"encoding/json"
	"testing"
	"time"
)

func TestNewHub(t *testing.T) {
	hub := NewHub()
	if hub == nil {
		t.Fatal("expected non-nil Hub")
	}
	if hub.jobs == nil {
		t.Error("expected jobs map to be initialized")
	}
}

func newTestClient(jobID string) *Client {
	return &Client{
		JobID: jobID,
		Send:  make(chan []byte, 8),
	}
}

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient("job-1")
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast("job-1", MsgDone, DonePayload{Score: 42})

	select {
	case data := <-client.Send:
		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			t.Fatalf("failed to unmarshal message: %v", err)
		}
		if msg.Type != MsgDone {
			t.Errorf("expected type %q, got %q", MsgDone, msg.Type)
		}
		var payload DonePayload
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			t.Fatalf("failed to unmarshal payload: %v", err)
		}
		if payload.Score != 42 {
			t.Errorf("expected score 42, got %d", payload.Score)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
	}
}

func TestHubBroadcastToUnknownJobIsNoop(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// No subscribers registered; this must not panic or block.
	hub.Broadcast("nonexistent-job", MsgFailed, FailedPayload{Reason: "no dictionary produced a fit"})
}

func TestHubUnregisterClosesSendChannel(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := newTestClient("job-2")
	hub.register <- client
	time.Sleep(10 * time.Millisecond)

	hub.unregister <- client
	time.Sleep(10 * time.Millisecond)

	_, open := <-client.Send
	if open {
		t.Error("expected Send channel to be closed after unregister")
	}
}

func TestHubIsolatesJobs(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	clientA := newTestClient("job-a")
	clientB := newTestClient("job-b")
	hub.register <- clientA
	hub.register <- clientB
	time.Sleep(10 * time.Millisecond)

	hub.Broadcast("job-a", MsgDone, DonePayload{Score: 1})

	select {
	case <-clientA.Send:
	case <-time.After(time.Second):
		t.Fatal("expected job-a's client to receive the broadcast")
	}

	select {
	case <-clientB.Send:
		t.Fatal("job-b's client should not receive job-a's broadcast")
	case <-time.After(50 * time.Millisecond):
	}
}
