package models

import (
	"testing"
	"time"
)

func TestMessageBeforeCreateDefaults(t *testing.T) {
	msg := Message{SenderID: "admin", ReceiverID: "p1", Content: "Hello"}
	if err := msg.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if msg.ID == "" {
		t.Error("id not assigned")
	}
	if msg.Timestamp.IsZero() {
		t.Error("timestamp not assigned")
	}

	sent := time.Date(2026, 8, 1, 9, 30, 0, 0, time.UTC)
	msg = Message{ID: "m1", Timestamp: sent}
	if err := msg.BeforeCreate(nil); err != nil {
		t.Fatalf("before create: %v", err)
	}
	if msg.ID != "m1" || !msg.Timestamp.Equal(sent) {
		t.Error("explicit id or timestamp overwritten")
	}
}
