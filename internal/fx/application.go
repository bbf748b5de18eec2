package fx

import (
	"lpsimplex/internal/config"

	"go.uber.org/fx"
)

// Application creates the main FX application wiring config, the
// solve API, the live trace stream and the batch scheduler together.
func Application() *fx.App {
	options := []fx.Option{
		CoreModule,
		AppModule,
	}

	if config.IsProduction() {
		options = append(options, fx.NopLogger)
	}

	return fx.New(options...)
}
