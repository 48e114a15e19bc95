package guest

import (
	"github.com/railzwaylabs/frontdesk/internal/guest/repository"
	"github.com/railzwaylabs/frontdesk/internal/guest/service"
	"go.uber.org/fx"
)

var Module = fx.Module("guest.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
