package rent

import "go.uber.org/fx"

// Module exposes the rental lifecycle engine via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
