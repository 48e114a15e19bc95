package occupancy

import (
	"github.com/railzwaylabs/frontdesk/internal/occupancy/service"
	"go.uber.org/fx"
)

var Module = fx.Module("occupancy.service",
	fx.Provide(service.New),
)
