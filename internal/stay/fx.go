package stay

import (
	"github.com/railzwaylabs/frontdesk/internal/stay/repository"
	"github.com/railzwaylabs/frontdesk/internal/stay/service"
	"go.uber.org/fx"
)

var Module = fx.Module("stay.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
