package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/calendar"
	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/config"
	"github.com/kinnoda-akl/RMA-working-day-calculator/internal/deadline"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath   string
	holidaysPath string
	logLevel     string
	logger       = zap.NewNop()
	cfg          *config.Config
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rma-calc",
		Short:         "RMA statutory working day calculator",
		Long:          "Count statutory working days between an application trigger and a decision, excluding weekends, public holidays, the Christmas/New Year period and hold periods",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load(configPath)
			if err != nil {
				return err
			}
			if holidaysPath != "" {
				cfg.Calendar.Source = holidaysPath
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid flags: %w", err)
			}

			if cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					logger = initLogger(cfg.Log.Level) // Fallback to console
				}
			} else {
				logger = initLogger(cfg.Log.Level)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file path (default: ./config.yaml if present)")
	rootCmd.PersistentFlags().StringVar(&holidaysPath, "holidays", "", "Holiday CSV file or URL, overrides calendar.source")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(calculateCmd())
	rootCmd.AddCommand(classifyCmd())
	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(typesCmd())

	return rootCmd
}

// loadCalendar starts the holiday load and waits for it up to the configured
// timeout. A failed or slow load is logged and the returned loader keeps
// serving weekends and the blackout window only.
func loadCalendar(ctx context.Context) (*calendar.Loader, error) {
	blackout, err := cfg.Calendar.GetBlackout()
	if err != nil {
		return nil, err
	}

	timeout := cfg.Calendar.GetTimeout()
	source := calendar.NewSource(cfg.Calendar.Source, cfg.Calendar.FallbackFile, timeout, logger)
	loader := calendar.NewLoader(source, blackout, logger)
	loader.Start(ctx)

	waitCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	switch err := loader.Wait(waitCtx); {
	case errors.Is(err, context.DeadlineExceeded):
		logger.Warn("Holiday calendar still loading, continuing without public holidays",
			zap.String("source", source.Name()),
			zap.Duration("timeout", timeout))
		warnf("Warning: holiday calendar did not load within %s (public holidays are not excluded)\n", timeout)
	case err != nil:
		warnf("Warning: %v\n", err)
	}

	return loader, nil
}

func defaultApplicationType() deadline.ApplicationType {
	t, err := deadline.ParseApplicationType(cfg.Defaults.ApplicationType)
	if err != nil {
		return deadline.ApplicationNonNotified
	}
	return t
}

func warnf(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, format, a...)
}

func initLogger(level string) *zap.Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.Level = zap.NewAtomicLevelAt(parseLevel(level))

	logger, err := config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	return logger
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	// Setup lumberjack for log rotation
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		parseLevel(level),
	)

	return zap.New(core), nil
}

func parseLevel(level string) zapcore.Level {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		return zapcore.InfoLevel
	}
	return zapLevel
}
