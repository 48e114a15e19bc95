package sale

import (
	"github.com/railzwaylabs/frontdesk/internal/sale/repository"
	"github.com/railzwaylabs/frontdesk/internal/sale/service"
	"go.uber.org/fx"
)

var Module = fx.Module("sale.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
