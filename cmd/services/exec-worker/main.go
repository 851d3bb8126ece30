package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"remote-execution-client/internal/config"
	"remote-execution-client/internal/execution"
	"remote-execution-client/internal/files"
	"remote-execution-client/internal/parser"
	"remote-execution-client/internal/queue"
	"remote-execution-client/internal/repository"
	"remote-execution-client/internal/validation"
)

func main() {
	args := parser.ParseDefaultConfigurationArguments()

	if err := config.ConfigureLogger(args.LogLevel); err != nil {
		log.Fatal().Err(err).Msg("failed to configure logger")
	}

	log.Info().Msg("starting exec-worker")

	client, err := execution.NewClient(&http.Client{}, &execution.Config{
		Judge0URL:      args.Judge0URL,
		PistonURL:      args.PistonURL,
		DefaultTimeout: args.Timeout,
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create execution client")
	}

	repo, repoErr := repository.NewRepository(args.DatabaseConn)

	if repoErr != nil {
		log.Fatal().Err(repoErr).Msg("failed to create database connection")
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

	queueRunner, err := queue.NewQueue(&queue.Config{
		Handler: &queue.ExecutionHandler{
			Client:      client,
			FileHandler: fileHandler,
			Repo:        repo,
			Translator:  translator,
			Validator:   validate,
			Timeout:     args.Timeout,
		},
		Nsq: &queue.NsqConfig{
			Topic:            args.NsqTopic,
			Channel:          args.NsqChannel,
			NsqLookupAddress: args.NsqAddress,
			NsqLookupPort:    args.NsqPort,
			MaxInFlight:      args.MaxInFlight,
			Consumer:         true,
			Producer:         false,
		},
		Sqs: &queue.SqsConfig{
			QueueURL:        args.SqsQueue,
			WaitTimeSeconds: args.WaitTimeSeconds,
			MaxInFlight:     args.MaxInFlight,
			Consumer:        true,
		},
	})

	if err != nil {
		log.Fatal().Err(err).Msg("failed to create queue")
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info().Msg("stopping exec-worker")
	queueRunner.Stop()
}
