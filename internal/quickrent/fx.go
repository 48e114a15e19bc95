package quickrent

import (
	"github.com/railzwaylabs/frontdesk/internal/quickrent/service"
	"go.uber.org/fx"
)

var Module = fx.Module("quickrent.service",
	fx.Provide(service.New),
)
