package events

import (
	"github.com/railzwaylabs/frontdesk/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("events",
	fx.Provide(NewPublisher),
)

func NewPublisher(lc fx.Lifecycle, cfg config.Config, log *zap.Logger) Publisher {
	if cfg.EventsDriver == "amqp" {
		pub := NewAMQPPublisher(cfg.AMQPURL, cfg.EventsQueue, log)
		lc.Append(fx.StopHook(pub.Close))
		return pub
	}
	return NewLogPublisher(log)
}
