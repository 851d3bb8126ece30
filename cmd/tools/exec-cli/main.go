package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"remote-execution-client/internal/config"
	"remote-execution-client/internal/execution"
	"remote-execution-client/internal/parser"
	"remote-execution-client/internal/runner"
)

func main() {
	args, err := parser.ParseToolArguments(os.Args[0], os.Args[1:])

	if err != nil {
		os.Exit(2)
	}

	if err := config.ConfigureLogger(args.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logger")
	}

	platform, err := execution.ParsePlatform(args.Platform)

	if err != nil {
		log.Fatal().Err(err).Msg("invalid platform")
	}

	source, err := args.SourceCode()

	if err != nil {
		log.Fatal().Err(err).Msg("failed to read source code")
	}

	client, err := execution.NewClient(&http.Client{}, &execution.Config{
		Judge0URL:      args.Judge0URL,
		PistonURL:      args.PistonURL,
		DefaultTimeout: args.Timeout,
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create execution client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	_, err = runner.Run(ctx, client, &runner.Config{
		Platform:   platform,
		Language:   args.Language,
		Version:    args.Version,
		SourceCode: source,
		Timeout:    args.Timeout,
		Output:     runner.Output{Path: args.Output},
	}, os.Stdout)

	if err != nil {
		stop()
		log.Fatal().Err(err).Msg("execution failed")
	}
}
