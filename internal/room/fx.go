package room

import (
	"github.com/railzwaylabs/frontdesk/internal/room/repository"
	"github.com/railzwaylabs/frontdesk/internal/room/service"
	"go.uber.org/fx"
)

var Module = fx.Module("room.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
