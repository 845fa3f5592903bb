package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"
)

const (
	natsMaxReconnects = 10
	natsSubjectPrefix = "wordwolf"
)

// NATSNotifier はイベントをNATSのサブジェクトに発行します
// プロセス外のコンシューマ（別インスタンス・集計など）向けの配信経路です
type NATSNotifier struct {
	nc *nats.Conn
}

// ConnectNATS はNATSに接続してNotifierを作成します
func ConnectNATS(url string) (*NATSNotifier, error) {
	opts := []nats.Option{
		nats.MaxReconnects(natsMaxReconnects),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Error().Err(err).Msg("NATS disconnected")
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Info().Str("url", nc.ConnectedUrl()).Msg("NATS reconnected")
		}),
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("connect to NATS: %w", err)
	}
	return &NATSNotifier{nc: nc}, nil
}

// Notify はイベントを "wordwolf.<channel>.<event>" サブジェクトに発行します
// 発行失敗はログだけ残して握りつぶします
func (n *NATSNotifier) Notify(_ context.Context, channel, event string, payload any) {
	subject := fmt.Sprintf("%s.%s.%s", natsSubjectPrefix, channel, event)
	b, err := json.Marshal(Envelope{Channel: channel, Event: event, Payload: payload})
	if err != nil {
		log.Error().Err(err).Str("subject", subject).Msg("failed to marshal event")
		return
	}
	if err := n.nc.Publish(subject, b); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("failed to publish event")
	}
}

// Close はNATS接続を閉じます
func (n *NATSNotifier) Close() {
	n.nc.Close()
}
