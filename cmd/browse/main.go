package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"

	"realty-stream/internal/models"
	"realty-stream/internal/transformers"
	"realty-stream/pkg/logger"
	"realty-stream/pkg/streamclient"
)

// Config is read from BROWSE_* variables; flags override it.
type Config struct {
	Server        string        `env:"BROWSE_SERVER"       envDefault:"http://localhost:8080"`
	City          string        `env:"BROWSE_CITY"         envDefault:"Hyderabad"`
	Search        string        `env:"BROWSE_SEARCH"`
	Price         string        `env:"BROWSE_PRICE"`
	Select        string        `env:"BROWSE_SELECT"`
	HeaderTimeout time.Duration `env:"BROWSE_HEADER_TIMEOUT" envDefault:"10s"`
	LogLevel      string        `env:"BROWSE_LOG_LEVEL"    envDefault:"warn"`
}

func loadConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("browse", flag.ContinueOnError)
	fs.StringVar(&cfg.Server, "server", cfg.Server, "base URL of the project server")
	fs.StringVar(&cfg.City, "city", cfg.City, "city to stream")
	fs.StringVar(&cfg.Search, "q", cfg.Search, "filter by name or location")
	fs.StringVar(&cfg.Price, "price", cfg.Price, "price filter in lakh, e.g. 50-100")
	fs.StringVar(&cfg.Select, "select", cfg.Select, "project name to highlight")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	logger.InitLogger(os.Stderr, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout); err != nil {
		logger.GlobalLogger.Errorf("browse %s: %v", cfg.City, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg Config, out io.Writer) error {
	prices := transformers.NewPriceTransformer()
	priceFilter, err := prices.ParsePriceFilter(cfg.Price)
	if err != nil {
		return err
	}

	printed := 0
	state := streamclient.NewState(func(snap streamclient.Snapshot) {
		for ; printed < len(snap.Projects); printed++ {
			printProject(out, printed+1, snap.Projects[printed], "")
		}
	})

	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.ResponseHeaderTimeout = cfg.HeaderTimeout
	client := streamclient.NewClient(cfg.Server, &http.Client{Transport: transport})
	browser := streamclient.NewCityBrowser(client, state)
	defer browser.Close()

	fmt.Fprintf(out, "Streaming projects in %s...\n", cfg.City)
	select {
	case <-browser.Open(ctx, cfg.City):
	case <-ctx.Done():
		browser.Close()
		return ctx.Err()
	}

	snap := state.Snapshot()
	if snap.Error != "" {
		return fmt.Errorf("%s: %w", snap.Error, browser.Err())
	}

	if cfg.Select != "" && !state.Select(cfg.Select) {
		logger.GlobalLogger.Warnf("no project named %q in %s", cfg.Select, cfg.City)
	}
	snap = state.Snapshot()

	filtered := transformers.NewListingFilter(prices).FilterProjects(snap.Projects, transformers.FilterCriteria{
		Search: cfg.Search,
		Price:  priceFilter,
	})

	fmt.Fprintf(out, "\n%d of %d projects match\n", len(filtered), len(snap.Projects))
	for i, p := range filtered {
		printProject(out, i+1, p, snap.Selected)
	}
	return nil
}

func printProject(out io.Writer, n int, p models.ProjectRecord, selected string) {
	marker := " "
	if selected != "" && p.Name == selected {
		marker = "*"
	}
	fmt.Fprintf(out, "%s%2d. %s | %s | %s | %s | %.4f, %.4f\n",
		marker, n, p.Name, p.Location, p.PriceRange, p.BuilderName, p.Coordinates.Lat, p.Coordinates.Lon)
}
