package bootstrap

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("bootstrap",
	fx.Provide(NewSchemaGate),
	fx.Invoke(registerSchemaCheck),
)

// registerSchemaCheck fails fx startup before the HTTP server binds when the
// database was migrated by a different build.
func registerSchemaCheck(lc fx.Lifecycle, gate *SchemaGate, log *zap.Logger) {
	lc.Append(fx.StartHook(func(ctx context.Context) error {
		if err := gate.Check(ctx); err != nil {
			log.Error("schema gate refused startup", zap.Error(err))
			return err
		}
		return nil
	}))
}
