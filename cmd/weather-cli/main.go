// Command weather-cli drives the weather widget from a terminal.
// Each line read from stdin replaces the query and submits it; ":q" exits.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"weatherwidget.app/internal/adapters/render"
	"weatherwidget.app/internal/app"
	"weatherwidget.app/internal/config"
	"weatherwidget.app/internal/core/weather"
	"weatherwidget.app/internal/core/widget"
	"weatherwidget.app/pkg/logger"
)

const quitCommand = ":q"

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found or error loading it")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, "configuration error:", err)
		os.Exit(1)
	}

	// Logs go to stderr so stdout carries only the widget
	logs := logger.NewWithOptions(logger.Options{Level: "warn", Format: "text", Output: os.Stderr})
	logs.Install()

	deps, err := app.NewDependencyContainer(cfg, app.DependencyOptions{
		Registerer: prometheus.NewRegistry(),
		Logger:     logs.Logger,
	})
	if err != nil {
		slog.Error("Failed to initialize dependencies", "error", err)
		os.Exit(1)
	}
	defer func() { _ = deps.Cleanup() }()

	p := deps.ApplicationPorts()
	useCase, err := weather.NewUseCase(weather.UseCaseDependencies{
		WeatherProvider: p.WeatherProvider,
		Logger:          p.Logger,
		Metrics:         p.LookupMetrics,
	})
	if err != nil {
		slog.Error("Failed to create weather use case", "error", err)
		os.Exit(1)
	}

	controller, err := widget.NewController(widget.Options{
		Lookup:       useCase,
		Logger:       p.Logger,
		Metrics:      p.SessionMetrics,
		DefaultQuery: cfg.Widget.DefaultCity,
		SessionID:    "cli",
	})
	if err != nil {
		slog.Error("Failed to create widget controller", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, controller, os.Stdin, os.Stdout); err != nil {
		slog.Error("Widget session failed", "error", err)
		os.Exit(1)
	}
}

// run mounts the controller, then submits every input line until EOF or ":q"
func run(ctx context.Context, controller *widget.Controller, in io.Reader, out io.Writer) error {
	var mu sync.Mutex
	unsubscribe := controller.Subscribe(func(u widget.Update) {
		mu.Lock()
		defer mu.Unlock()
		printUpdate(out, u)
	})
	defer unsubscribe()

	controller.Mount(ctx)

	scanner := bufio.NewScanner(in)
	for {
		mu.Lock()
		fmt.Fprint(out, "city> ")
		mu.Unlock()

		if !scanner.Scan() {
			break
		}

		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == quitCommand {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}

		controller.SetQuery(line)
		controller.Submit(ctx)
	}

	return scanner.Err()
}

func printUpdate(out io.Writer, u widget.Update) {
	if u.State.Kind() == widget.KindIdle {
		return
	}
	fmt.Fprintln(out, render.Text(u.State))
	if u.State.Kind() != widget.KindLoading {
		fmt.Fprintln(out)
	}
}
