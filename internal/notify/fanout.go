package notify

import "context"

// Fanout は複数のNotifierに同じイベントを配信します
// NATSが構成されている場合にハブと束ねるために使います
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, channel, event string, payload any) {
	for _, n := range f {
		n.Notify(ctx, channel, event, payload)
	}
}
