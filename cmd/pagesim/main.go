package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/bietkhonhungvandi212/pagesim/internal/config"
	"github.com/bietkhonhungvandi212/pagesim/internal/driver"
	"github.com/bietkhonhungvandi212/pagesim/internal/paging"
	"github.com/bietkhonhungvandi212/pagesim/internal/telemetry"
	util "github.com/bietkhonhungvandi212/pagesim/internal/utils"
	"github.com/bietkhonhungvandi212/pagesim/pkg/logger"
	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

var (
	configPath  = flag.String("config", "", "YAML config file")
	frames      = flag.Int("frames", 0, "default frame count for new processes (overrides config)")
	algorithm   = flag.String("algorithm", "", "replacement algorithm: FIFO, LRU, Optimal or CLOCK (overrides config)")
	stepDelay   = flag.Duration("step", -1, "delay between steps of 'play' (overrides config)")
	seed        = flag.Int64("seed", 0, "random seed for the driver, 0 for time based (overrides config)")
	logLevel    = flag.String("log_level", "", "log level (overrides config)")
	metricsPort = flag.Int("metrics_port", 0, "serve Prometheus metrics on this port (enables telemetry)")
)

func loadConfig() (config.Config, error) {
	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if *frames != 0 {
		cfg.Simulator.Frames = *frames
	}
	if *algorithm != "" {
		cfg.Simulator.Algorithm = util.Algorithm(*algorithm)
	}
	if *stepDelay >= 0 {
		cfg.Driver.StepDelay = *stepDelay
	}
	if *seed != 0 {
		cfg.Driver.Seed = *seed
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *metricsPort != 0 {
		cfg.Telemetry.Enabled = true
		cfg.Telemetry.PrometheusPort = *metricsPort
	}
	return cfg, cfg.Validate()
}

func main() {
	flag.Parse()
	os.Exit(runCLI())
}

// runCLI returns the process exit code. Errors come back through it so the deferred
// telemetry shutdown and logger sync always run.
func runCLI() int {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	log, err := logger.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	tel, shutdown, err := telemetry.New(cfg.Telemetry, log)
	if err != nil {
		log.Error("Failed to initialize telemetry", zap.Error(err))
		return 1
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			log.Error("Telemetry shutdown failed", zap.Error(err))
		}
	}()

	metrics, err := paging.NewMetrics(tel.Meter)
	if err != nil {
		log.Error("Failed to register metrics", zap.Error(err))
		return 1
	}
	engine, err := paging.NewEngine(cfg.Simulator,
		paging.WithLogger(log.Named("engine")),
		paging.WithMetrics(metrics),
	)
	if err != nil {
		log.Error("Failed to create engine", zap.Error(err))
		return 1
	}
	drv, err := driver.New(engine, cfg.Driver,
		driver.WithLogger(log.Named("driver")),
		driver.WithTracer(tel.Tracer),
	)
	if err != nil {
		log.Error("Failed to create driver", zap.Error(err))
		return 1
	}

	sh := &shell{
		engine: engine,
		driver: drv,
		out:    os.Stdout,
		logger: log,
	}

	// one-shot mode: pagesim [flags] <command> [args...]
	if flag.NArg() > 0 {
		if err := sh.execute(ctx, flag.Args()); err != nil && !errors.Is(err, errQuit) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	if err := interactive(ctx, sh); err != nil {
		log.Error("Shell terminated", zap.Error(err))
		return 1
	}
	return 0
}

func interactive(ctx context.Context, sh *shell) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "pagesim> ",
		HistoryFile:     filepath.Join(os.TempDir(), ".pagesim_history"),
		AutoComplete:    sh.completer(),
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return err
	}
	defer rl.Close()
	sh.out = rl.Stdout()

	fmt.Fprintln(sh.out, "Demand paging simulator. Type 'help' for commands, 'quit' to leave.")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		args := strings.Fields(line)
		if err := sh.execute(ctx, args); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			fmt.Fprintf(sh.out, "Error: %v\n", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
