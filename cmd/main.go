package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"

	"github.com/gdamore/tcell/v2"

	"github.com/smasonuk/particleglobe"
	"github.com/smasonuk/particleglobe/display"
	"github.com/smasonuk/particleglobe/terminal"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var flags particleglobe.Flags
	var logPath string
	flag.StringVar(&flags.ConfigPath, "config", "", "JSON config file")
	flag.StringVar(&flags.Backend, "backend", "", "display or terminal")
	flag.StringVar(&flags.Sampler, "sampler", "", "uniform or graticule")
	flag.IntVar(&flags.Count, "count", 0, "number of points (0 = sampler default)")
	flag.Int64Var(&flags.Seed, "seed", 0, "random seed for the uniform sampler")
	flag.BoolVar(&flags.Strict, "strict", false, "fail instead of clipping graticule rings")
	flag.IntVar(&flags.Width, "width", 0, "window width")
	flag.IntVar(&flags.Height, "height", 0, "window height")
	flag.BoolVar(&flags.Debug, "debug", false, "debug logging and FPS overlay")
	flag.StringVar(&logPath, "log", "particleglobe.log", "log file for the terminal backend")
	flag.Parse()

	cfg := particleglobe.DefaultConfig()
	if flags.ConfigPath != "" {
		loaded, err := particleglobe.Load(flags.ConfigPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.Resolve(flags)

	logger := particleglobe.NewDefaultLogger("globe", cfg.Debug)
	if cfg.Backend == particleglobe.BackendTerminal {
		// the terminal owns stdout while running
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log: %w", err)
		}
		defer f.Close()
		logger = particleglobe.NewFileLogger("globe", cfg.Debug, log.New(f, "", log.LstdFlags|log.Lmicroseconds))
	}

	log.Println("Initializing session...")
	session, err := particleglobe.NewSessionFromConfig(cfg, logger)
	if err != nil {
		return err
	}

	if cfg.Backend == particleglobe.BackendTerminal {
		screen, err := tcell.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		return terminal.NewApp(screen, session, cfg.TPS, logger).Run(ctx)
	}
	return display.Run(session, cfg, logger)
}
