package shell

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// Shell hosts the application. It starts every module, blocks until a
// stop signal arrives (SIGINT, SIGTERM or an fx.Shutdowner request) and
// then stops the modules in reverse order.
type Shell struct {
	log     *zap.Logger
	options []fx.Option
}

func New(log *zap.Logger, options ...fx.Option) *Shell {
	return &Shell{
		log:     log,
		options: options,
	}
}

func (s *Shell) Run(ctx context.Context, options ...fx.Option) error {
	// 0. after run ends, flush the logger
	defer s.log.Sync()

	// 1. create shell context
	shellCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	// 2. create execution context
	appCtx, cancelApp := context.WithCancel(ctx)
	defer cancelApp()

	// 3. create fx application with app context
	fxApp := s.createFxApp(appCtx, options...)
	if err := fxApp.Err(); err != nil {
		s.log.Error("invalid application", zap.Error(err))
		return NewFailedExitError(err)
	}

	// 4. catch stop signals during start too, fx only listens for
	//    them once start has returned
	sigCtx, stopSignals := signal.NotifyContext(shellCtx, os.Interrupt, syscall.SIGTERM)
	defer stopSignals()

	// 5. create start context w/ timeout
	startCtx, cancelStart := context.WithTimeout(shellCtx, fxApp.StartTimeout())
	defer cancelStart()

	// 6. start the application, exit on error. nothing user-facing
	//    has started if the worker could not be started.
	if err := fxApp.Start(startCtx); err != nil {
		s.log.Error("failed to start", zap.Error(err))
		return NewFailedExitError(err)
	}

	// 7. wait for done signal by OS or a shutdown request
	var exitCode int
	select {
	case sig := <-fxApp.Wait():
		exitCode = sig.ExitCode
		s.log.Info("stop requested", zap.Stringer("signal", sig))
	case <-sigCtx.Done():
		s.log.Info("stop requested by signal")
	}

	// 8. create shutdown context
	stopCtx, cancelStop := context.WithTimeout(shellCtx, fxApp.StopTimeout())
	defer cancelStop()

	// 9. gracefully shutdown the app, exit on error
	if err := fxApp.Stop(stopCtx); err != nil {
		s.log.Error("failed to stop", zap.Error(err))
		return NewFailedExitError(err)
	}

	// 10. return with the signal's exit code
	return NewExitError(exitCode)
}

func (s *Shell) createFxApp(ctx context.Context, options ...fx.Option) *fx.App {
	// 1. create fx application
	return fx.New(
		// 2. inject global execution context
		fx.Supply(fx.Annotate(ctx, fx.As(new(context.Context)))),

		// 3. inject the logger
		fx.Supply(s.log),

		// 4. use the logger also for fx' logs
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.ZapLogger{Logger: s.log.Named("fx")}
		}),

		// 5. provide user-provided options
		fx.Options(s.options...),

		// 6. provide user-provided run options
		fx.Options(options...),
	)
}
