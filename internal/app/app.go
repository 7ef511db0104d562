package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/numkit/internal/cli"
	"github.com/agbru/numkit/internal/config"
	apperrors "github.com/agbru/numkit/internal/errors"
	"github.com/agbru/numkit/internal/fibonacci"
	"github.com/agbru/numkit/internal/logging"
	"github.com/agbru/numkit/internal/metrics"
	"github.com/agbru/numkit/internal/orchestration"
	"github.com/agbru/numkit/internal/tui"
	"github.com/agbru/numkit/internal/ui"
)

// Application is one configured numkit invocation.
type Application struct {
	Config    config.AppConfig
	Factory   fibonacci.CalculatorFactory
	ErrWriter io.Writer
	Logger    logging.Logger
	Metrics   *metrics.Metrics
	// RunID tags logs and result files.
	RunID string
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory replaces the default calculator registry.
func WithFactory(f fibonacci.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger replaces the console logger built from --log-level.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New parses args (args[0] is the program name) and builds the
// application. Parse errors have already been reported on errWriter.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = fibonacci.GlobalFactory()
	}

	programName := "numkit"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg

	app.RunID = cli.NewRunID()
	if app.Logger == nil {
		app.Logger = logging.NewConsoleLogger(errWriter, "numkit", logging.ParseLevel(cfg.LogLevel), cfg.NoColor)
	}
	app.Metrics = metrics.New()
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}

	ui.InitTheme(a.Config.NoColor)

	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	start := time.Now()
	a.Logger.Debug("run started", logging.String("run_id", a.RunID), logging.String("op", a.Config.Op))

	var code int
	switch {
	case a.Config.REPL:
		code = a.runREPL(ctx, out)
	case a.Config.TUI:
		code = tui.Run(ctx, a.Config.Text, Version)
	default:
		ctx, cancelTimeout := context.WithTimeout(ctx, a.Config.Timeout)
		defer cancelTimeout()
		switch {
		case a.Config.Demo:
			code = a.runDemo(ctx, out)
		case a.Config.Op == config.OpEven || a.Config.Op == config.OpLen:
			code = a.runOperation(ctx, out)
		default:
			code = a.runCalculate(ctx, out)
		}
	}

	if err := a.writeMetrics(); err != nil {
		a.Logger.Error("metrics export failed", err, logging.String("path", a.Config.MetricsFile))
		if code == apperrors.ExitSuccess {
			code = apperrors.ExitErrorGeneric
		}
	}
	a.Logger.Debug("run finished", logging.String("run_id", a.RunID),
		logging.Int("exit_code", code), logging.Duration("elapsed", time.Since(start)))
	return code
}

func (a *Application) runOptions() []orchestration.Option {
	return []orchestration.Option{
		orchestration.WithMetrics(a.Metrics),
		orchestration.WithLogger(a.Logger),
	}
}

func (a *Application) outputConfig() cli.OutputConfig {
	return cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Format:     a.Config.Format,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		ShowValue:  a.Config.ShowValue,
		RunID:      a.RunID,
	}
}

func (a *Application) writeMetrics() error {
	if a.Config.MetricsFile == "" || a.Metrics == nil {
		return nil
	}
	return apperrors.WrapError(a.Metrics.WriteTextfile(a.Config.MetricsFile), "writing metrics to %s", a.Config.MetricsFile)
}

func (a *Application) runCompletion(out io.Writer) int {
	if err := cli.GenerateCompletion(out, a.Config.Completion, a.Factory.List()); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Options:     a.Config.ToCalculationOptions(),
		RunOptions:  a.runOptions(),
	})
	repl.SetOutput(out)
	repl.Start(ctx)
	if apperrors.IsContextError(ctx.Err()) {
		return apperrors.ExitErrorCanceled
	}
	return apperrors.ExitSuccess
}

// runOperation handles --op even and --op len.
func (a *Application) runOperation(ctx context.Context, out io.Writer) int {
	var res orchestration.OperationResult
	if a.Config.Op == config.OpEven {
		res = orchestration.RunParity(ctx, a.Config.Value, a.runOptions()...)
	} else {
		res = orchestration.RunStringLength(ctx, a.Config.Text, a.runOptions()...)
	}
	if err := cli.DisplayOperationWithConfig(out, res, a.Config.Details, a.outputConfig()); err != nil {
		a.Logger.Error("writing result failed", err, logging.String("op", res.Op))
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return apperrors.ExitErrorGeneric
	}
	return apperrors.ExitSuccess
}

// IsHelpError reports whether err came from -h/--help.
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
