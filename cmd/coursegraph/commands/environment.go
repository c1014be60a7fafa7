package commands

import (
	"context"
	"coursegraph/internal/components/telemetry"
	"coursegraph/internal/graph"
	"coursegraph/internal/scrapers/banner"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
)

const environment_key = "coursegraph.env"

// environment is everything a command needs, built once per invocation.
type environment struct {
	Config  Config
	Tel     telemetry.API
	Scraper banner.Scraper
	Sink    graph.Sink
	Stdout  io.Writer

	otel telemetry.Otel
}

func setEnvironment(ctx context.Context, env *environment) context.Context {
	return context.WithValue(ctx, environment_key, env)
}

func getEnvironment(ctx context.Context) *environment {
	return ctx.Value(environment_key).(*environment)
}

func newEnvironment(ctx context.Context, cfg Config) (*environment, error) {
	telemetry.InitSlog(cfg.Debug)

	otel, err := telemetry.SetupOtel(ctx, "coursegraph", cfg.Telemetry)
	if err != nil {
		return nil, fmt.Errorf("setup telemetry: %w", err)
	}
	tel, err := telemetry.NewOtelAPI(telemetry.SlogAPI{})
	if err != nil {
		return nil, errors.Join(fmt.Errorf("setup telemetry: %w", err), otel.Shutdown(ctx))
	}

	var output telemetry.MessageOutput
	if cfg.HttpDumpDir != "" {
		fsOutput, err := telemetry.NewFilesystemOutput(cfg.HttpDumpDir)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("http dump dir: %w", err), otel.Shutdown(ctx))
		}
		output = fsOutput
	}

	client, err := banner.NewClient(banner.ClientOptions{
		BaseUrl:           cfg.BaseUrl,
		Timeout:           cfg.Timeout(),
		RequestsPerSecond: cfg.RequestsPerSecond,
		UserAgent:         cfg.UserAgent,
		MessageOutput:     output,
	}, tel)
	if err != nil {
		return nil, errors.Join(fmt.Errorf("banner client: %w", err), otel.Shutdown(ctx))
	}

	return &environment{
		Config:  cfg,
		Tel:     tel,
		Scraper: banner.NewScraper(client, tel),
		Sink:    graph.FileSink{Path: cfg.Output},
		Stdout:  os.Stdout,
		otel:    otel,
	}, nil
}

// lookupEnvironment is getEnvironment for callers that may run before the
// environment was built.
func lookupEnvironment(ctx context.Context) (*environment, bool) {
	if ctx == nil {
		return nil, false
	}
	env, ok := ctx.Value(environment_key).(*environment)
	return env, ok
}

// Close samples the process stats, then flushes and shuts down telemetry.
func (e *environment) Close(ctx context.Context) error {
	telemetry.RecordProcessStats(ctx, e.Tel)
	return e.otel.Shutdown(ctx)
}

// closeEnvironment closes the environment of the command that ran, it does
// nothing if the command failed before one was built.
func closeEnvironment(cmd *cobra.Command) error {
	if cmd == nil {
		return nil
	}
	env, ok := lookupEnvironment(cmd.Context())
	if !ok {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	return env.Close(ctx)
}
