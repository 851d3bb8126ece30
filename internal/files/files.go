package files

import (
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

const (
	// ResultFileName is the name the decoded platform response is stored under.
	ResultFileName = "result.json"
	// SourceFileName is the name the submitted source code is stored under.
	SourceFileName = "source"
)

type File struct {
	ID   string
	Name string
	Data []byte
}

//go:generate mockgen -destination=mocks/mock_files.go -package=mocks remote-execution-client/internal/files Files

type Files interface {
	WriteFile(file *File) error
	GetFile(id string, name string) ([]byte, error)
}

type LocalConfig struct {
	LocalRootPath string
}

type S3Config struct {
	BucketName string
}

type Config struct {
	Local *LocalConfig
	S3    *S3Config
	// ForceLocalMode keeps every file on disk even when a bucket is configured.
	ForceLocalMode bool
}

// NewFilesHandler returns the S3 handler when a bucket is configured, otherwise
// files are kept on the local disk.
func NewFilesHandler(config *Config) (Files, error) {
	if config.ForceLocalMode || config.S3 == nil || config.S3.BucketName == "" {
		if config.Local == nil {
			return nil, errors.New("local files configuration is required")
		}

		return newLocalFiles(config.Local)
	}

	return newS3Files(config.S3)
}

// MarshalJSON pretty prints the value the way results are written to disk.
func MarshalJSON(value any) ([]byte, error) {
	data, err := json.MarshalIndent(value, "", "  ")

	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal json")
	}

	return append(data, '\n'), nil
}

// WriteJSON pretty prints the value to w.
func WriteJSON(w io.Writer, value any) error {
	data, err := MarshalJSON(value)

	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return errors.Wrap(err, "failed to write json")
}
