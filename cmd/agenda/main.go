package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/username/agenda-calendar/internal/agenda"
	"github.com/username/agenda-calendar/internal/appointments"
	"github.com/username/agenda-calendar/internal/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	configPath string
	logger     *zap.Logger
	out        io.Writer = os.Stdout
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "agenda",
		Short:         "Licensee agenda calendar",
		Long:          "Show the monthly agenda of a licensee: month grid, daily appointments and iCalendar export",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load config to get log file path
			cfg, err := config.Load(configPath)
			if err == nil && cfg.Log.File != "" {
				logger, err = initFileLogger(cfg.Log.File, cfg.Log.Level)
				if err != nil {
					initLogger() // Fallback to console
				}
			} else {
				initLogger()
			}
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.yaml", "Config file path")

	rootCmd.AddCommand(monthCmd())
	rootCmd.AddCommand(dayCmd())
	rootCmd.AddCommand(exportCmd())

	return rootCmd
}

// loadConfig loads and expands the configuration
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	cfg.ExpandEnvVars()
	return cfg, nil
}

func initializeService(cfg *config.Config) (*agenda.Service, error) {
	var source appointments.Source

	newAPISource := func() *appointments.APISource {
		src := appointments.NewAPISource(
			cfg.API.BaseURL,
			cfg.API.Token,
			cfg.API.TenantID,
			cfg.API.GetTimeout(),
			cfg.Source.GetCacheTTL(),
			logger,
		)
		if cfg.API.Retries > 0 {
			src.SetRetries(cfg.API.Retries)
		}
		return src
	}

	switch cfg.Source.GetSourceType() {
	case config.SourceAPI:
		logger.Info("Using backend API source", zap.String("base_url", cfg.API.BaseURL))
		source = newAPISource()

	case config.SourceFile:
		logger.Info("Using appointment file source", zap.String("file", cfg.Source.FallbackFile))
		fileSource := appointments.NewFileSource(cfg.Source.FallbackFile, logger)
		if err := fileSource.Load(); err != nil {
			return nil, err
		}
		source = fileSource

	case config.SourceComposite:
		logger.Info("Using backend API source with file fallback",
			zap.String("base_url", cfg.API.BaseURL),
			zap.String("file", cfg.Source.FallbackFile))
		composite := appointments.NewCompositeSource(
			newAPISource(),
			appointments.NewFileSource(cfg.Source.FallbackFile, logger),
			logger,
		)

		if err := composite.LoadFallback(); err != nil {
			logger.Warn("Failed to load fallback file, continuing with API only",
				zap.Error(err))
		}
		source = composite

	default:
		return nil, fmt.Errorf("unknown source type: %s", cfg.Source.Type)
	}

	return agenda.NewService(source, logger), nil
}

func initLogger() {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	// Keep stdout for the rendered agenda
	config.OutputPaths = []string{"stderr"}

	var err error
	logger, err = config.Build()
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
}

func initFileLogger(logFile string, level string) (*zap.Logger, error) {
	logWriter := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    100, // MB
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel
	}

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(logWriter),
		zapLevel,
	)

	return zap.New(core), nil
}
