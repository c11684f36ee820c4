package app

import (
	"github.com/carousell/ct-go/pkg/logger"
	"github.com/trooper-recruit/engage-api/internal/config"
	"github.com/trooper-recruit/engage-api/internal/kafka"
	"github.com/trooper-recruit/engage-api/internal/llm"
	"github.com/trooper-recruit/engage-api/internal/notify"
	"github.com/trooper-recruit/engage-api/internal/server"
	"github.com/trooper-recruit/engage-api/internal/usecase"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap/zapcore"
)

func Invoke(funcs ...any) *fx.App {
	log := logger.MustNamed("app")
	conf := config.MustLoad()
	log.Debugw("config loaded", log.Reflect("config", conf))
	return fx.New(
		fx.WithLogger(func() fxevent.Logger {
			l := &fxevent.ZapLogger{
				Logger: log.Unwrap().Desugar(),
			}
			l.UseLogLevel(zapcore.DebugLevel)
			return l
		}),
		fx.Provide(
			newGenkitClient,
			newStore,
			newLimiter,

			server.NewController,

			usecase.NewUserUsecase,
			usecase.NewLeaderboardUsecase,
			usecase.NewChatUsecase,

			llm.NewGenerator,
			notify.NewNotifier,

			kafka.NewMessageHandler,
			kafka.NewConsumer,
		),
		fx.Supply(conf),
		fx.Invoke(funcs...),
	)
}
