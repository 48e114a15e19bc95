package release

import (
	"github.com/railzwaylabs/frontdesk/internal/release/repository"
	"github.com/railzwaylabs/frontdesk/internal/release/service"
	"go.uber.org/fx"
)

var Module = fx.Module("release.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
