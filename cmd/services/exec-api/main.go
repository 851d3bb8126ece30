package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"
	"github.com/rs/zerolog/log"

	"remote-execution-client/internal/config"
	"remote-execution-client/internal/execution"
	"remote-execution-client/internal/files"
	"remote-execution-client/internal/middleware"
	"remote-execution-client/internal/parser"
	"remote-execution-client/internal/queue"
	"remote-execution-client/internal/repository"
	"remote-execution-client/internal/routing"
	"remote-execution-client/internal/validation"
)

func main() {
	args := parser.ParseDefaultConfigurationArguments()

	if err := config.ConfigureLogger(args.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logger")
	}

	log.Info().Str("environment", string(config.GetCurrentEnvironment())).Msg("starting exec-api")

	client, err := execution.NewClient(&http.Client{}, &execution.Config{
		Judge0URL:      args.Judge0URL,
		PistonURL:      args.PistonURL,
		DefaultTimeout: args.Timeout,
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create execution client")
	}

	repo, respErr := repository.NewRepository(args.DatabaseConn)

	if respErr != nil {
		log.Fatal().Err(respErr).Msg("failed to create database connection")
	}

	fileHandler, err := files.NewFilesHandler(&files.Config{
		Local:          &files.LocalConfig{LocalRootPath: args.FilesRootPath},
		S3:             &files.S3Config{BucketName: args.S3BucketName},
		ForceLocalMode: args.ForceLocalMode,
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create file handler")
	}

	validate, translator := validation.NewValidator()

	// in local mode the api executes its own submissions, otherwise it only
	// publishes them for the workers.
	var handler queue.MessageHandler

	if args.ForceLocalMode {
		handler = &queue.ExecutionHandler{
			Client:      client,
			FileHandler: fileHandler,
			Repo:        repo,
			Translator:  translator,
			Validator:   validate,
			Timeout:     args.Timeout,
		}
	}

	queueRunner, err := queue.NewQueue(&queue.Config{
		ForceLocalMode: args.ForceLocalMode,
		Handler:        handler,

		Local: &queue.LocalConfig{Workers: args.MaxInFlight},
		Nsq: &queue.NsqConfig{
			Topic:            args.NsqTopic,
			Channel:          args.NsqChannel,
			NsqLookupAddress: args.NsqAddress,
			NsqLookupPort:    args.NsqPort,
			MaxInFlight:      args.MaxInFlight,
			Consumer:         false,
			Producer:         true,
		},
		Sqs: &queue.SqsConfig{
			QueueURL:        args.SqsQueue,
			WaitTimeSeconds: args.WaitTimeSeconds,
			MaxInFlight:     args.MaxInFlight,
			Consumer:        false,
		},
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create queue")
	}

	router := routing.NewRouter(routing.ExecutionHandlers{
		Client:      client,
		FileHandler: fileHandler,
		Repo:        repo,
		Queue:       queueRunner,
		Translator:  translator,
		Validator:   validate,
		Timeout:     args.Timeout,
	}, middleware.RateLimitMiddleware(args.RateLimit, time.Minute))

	server := &http.Server{
		Addr:              args.ListenAddress,
		Handler:           handlers.LoggingHandler(os.Stdout, handlers.CompressHandler(router)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Msgf("listening on %s", args.ListenAddress)

		if listenErr := server.ListenAndServe(); listenErr != nil && listenErr != http.ErrServerClosed {
			log.Fatal().Err(listenErr).Msg("failed to listen")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down exec-api")

	ctx, cancel := context.WithTimeout(context.Background(), args.Timeout+5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("failed to shutdown the server")
	}

	queueRunner.Stop()
}
