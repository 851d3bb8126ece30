package runner

import (
	"context"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"remote-execution-client/internal/execution"
	"remote-execution-client/internal/files"
)

const s3Scheme = "s3://"

type Output struct {
	// Path is a file on disk or an s3://bucket/key object. Nothing is written
	// to disk when empty, the response is printed instead.
	Path string
}

// Config describes a single execution made from the command line.
type Config struct {
	Platform   execution.Platform
	Language   string
	Version    string
	SourceCode string
	Timeout    time.Duration
	Output     Output
}

// Run executes the configured source code and writes the decoded response of
// the platform. The response is still written when the platform reported an
// error, which is then returned.
func Run(ctx context.Context, submitter execution.Submitter, config *Config, stdout io.Writer) (*execution.Result, error) {
	request := &execution.Request{
		Platform:   config.Platform,
		Version:    config.Version,
		SourceCode: config.SourceCode,
	}

	if err := execution.ParseLanguage(config.Platform, config.Language, request); err != nil {
		return nil, err
	}

	result, err := submitter.Submit(ctx, request, config.Timeout)

	var upstreamErr *execution.UpstreamError

	if err != nil && !errors.As(err, &upstreamErr) {
		return nil, err
	}

	if writeErr := writeOutput(config.Output, result, stdout); writeErr != nil {
		return result, writeErr
	}

	return result, err
}

func writeOutput(output Output, result *execution.Result, stdout io.Writer) error {
	if output.Path == "" {
		return files.WriteJSON(stdout, result.RawPayload)
	}

	data, err := files.MarshalJSON(result.RawPayload)

	if err != nil {
		return err
	}

	handler, file, err := outputFile(output.Path)

	if err != nil {
		return err
	}

	file.Data = data

	if err := handler.WriteFile(file); err != nil {
		return err
	}

	log.Info().Str("path", output.Path).Msg("response written")
	return nil
}

// outputFile resolves the destination into the handler writing it and the
// file it is written as.
func outputFile(destination string) (files.Files, *files.File, error) {
	if strings.HasPrefix(destination, s3Scheme) {
		bucket, key, err := parseS3Path(destination)

		if err != nil {
			return nil, nil, err
		}

		handler, err := files.NewS3Files(bucket)

		if err != nil {
			return nil, nil, err
		}

		dir, name := path.Split(key)
		return handler, &files.File{ID: strings.TrimSuffix(dir, "/"), Name: name}, nil
	}

	return files.NewLocalFiles(filepath.Dir(destination)),
		&files.File{Name: filepath.Base(destination)}, nil
}

func parseS3Path(destination string) (bucket string, key string, err error) {
	bucket, key, _ = strings.Cut(strings.TrimPrefix(destination, s3Scheme), "/")

	if bucket == "" || key == "" || strings.HasSuffix(key, "/") {
		return "", "", errors.Errorf("%s is not a valid s3 object, expected s3://bucket/key", destination)
	}

	return bucket, key, nil
}
