package service

import (
	"context"
	"sync"
)

// recordedEvent はテスト中に捕捉した通知1件です
type recordedEvent struct {
	Channel string
	Event   string
	Payload any
}

// recordingNotifier は通知を記録するテスト用Notifierです
type recordingNotifier struct {
	mu     sync.Mutex
	events []recordedEvent
}

func (n *recordingNotifier) Notify(_ context.Context, channel, event string, payload any) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, recordedEvent{Channel: channel, Event: event, Payload: payload})
}

// byEvent は記録済み通知をイベント名で絞り込みます
func (n *recordingNotifier) byEvent(event string) []recordedEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []recordedEvent
	for _, e := range n.events {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}
