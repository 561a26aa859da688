//go:build wireinject
// +build wireinject

package app

import (
	"github.com/google/wire"

	"github.com/stulang/stulang/internal/infrastructure/config"
	"github.com/stulang/stulang/internal/infrastructure/logging"
)

var configSet = wire.NewSet(
	config.Load,
)

var runtimeSet = wire.NewSet(
	logging.NewLogger,
	ProvideRuntime,
)

var usecaseSet = wire.NewSet(
	ProvideCycleWordUsecase,
	ProvideCycleUsecase,
	ProvidePracticeUsecase,
	ProvideDictionaryUsecase,
	ProvideFlashcardUsecase,
	ProvideChatUsecase,
)

// Initialize builds the application container using Wire.
func Initialize() (*Container, error) {
	wire.Build(
		configSet,
		runtimeSet,
		usecaseSet,
		wire.Struct(new(Container), "*"),
	)
	return nil, nil
}
