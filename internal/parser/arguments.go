package parser

import (
	"os"
	"path/filepath"
	"time"

	"github.com/namsral/flag"
	"github.com/rs/zerolog/log"

	"remote-execution-client/internal/execution"
)

// Arguments are shared by the api and the worker. Every flag can also be set
// through the environment, e.g. NSQ_TOPIC for -nsq-topic.
type Arguments struct {
	ListenAddress string
	RateLimit     int
	LogLevel      string

	Judge0URL string
	PistonURL string
	Timeout   time.Duration

	DatabaseConn    string
	MaxInFlight     int
	SqsQueue        string
	WaitTimeSeconds int
	S3BucketName    string
	FilesRootPath   string
	ForceLocalMode  bool

	NsqAddress string
	NsqChannel string
	NsqPort    int
	NsqTopic   string
}

func ParseDefaultConfigurationArguments() Arguments {
	args, err := ParseArguments(os.Args[0], os.Args[1:])

	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse arguments")
	}

	return args
}

func ParseArguments(name string, arguments []string) (Arguments, error) {
	args := Arguments{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&args.ListenAddress, "listen-address", ":8080", "")
	fs.IntVar(&args.RateLimit, "rate-limit", 10, "requests per minute allowed for each client")
	fs.StringVar(&args.LogLevel, "log-level", "info", "")

	fs.StringVar(&args.Judge0URL, "judge0-url", execution.DefaultJudge0URL, "")
	fs.StringVar(&args.PistonURL, "piston-url", execution.DefaultPistonURL, "")
	fs.DurationVar(&args.Timeout, "timeout", 30*time.Second, "default timeout of a single execution")

	fs.StringVar(&args.DatabaseConn, "database-connection-string", "host=database user=root password=root port=54320 dbname=executions TimeZone=UTC", "")
	fs.IntVar(&args.MaxInFlight, "max-in-flight", 5, "")
	fs.StringVar(&args.SqsQueue, "sqs-queue", "", "")
	fs.IntVar(&args.WaitTimeSeconds, "wait-time-seconds", 20, "")
	fs.StringVar(&args.S3BucketName, "s3-bucket", "", "")
	fs.StringVar(&args.FilesRootPath, "files-root-path", filepath.Join(os.TempDir(), "executions"), "")
	fs.BoolVar(&args.ForceLocalMode, "force-local-mode", false, "keep queue and files in process and on disk")

	fs.StringVar(&args.NsqAddress, "nsq-address", "nsqd", "")
	fs.StringVar(&args.NsqChannel, "nsq-channel", "main", "")
	fs.IntVar(&args.NsqPort, "nsq-port", 4150, "")
	fs.StringVar(&args.NsqTopic, "nsq-topic", "executions", "")

	if err := fs.Parse(arguments); err != nil {
		return args, err
	}

	log.Info().Msgf("%+v parsed arguments", args)
	return args, nil
}

// ToolArguments configure a single execution from the command line.
type ToolArguments struct {
	Platform   string
	Language   string
	Version    string
	Source     string
	SourceFile string
	Output     string
	Timeout    time.Duration
	Judge0URL  string
	PistonURL  string
	LogLevel   string
}

func ParseToolArguments(name string, arguments []string) (ToolArguments, error) {
	args := ToolArguments{}
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.StringVar(&args.Platform, "platform", "piston", "judge0 or piston")
	fs.StringVar(&args.Language, "language", "", "language id for judge0, language name for piston")
	fs.StringVar(&args.Version, "version", "", "piston language version, the newest when empty")
	fs.StringVar(&args.Source, "source", "", "source code to execute")
	fs.StringVar(&args.SourceFile, "source-file", "", "file holding the source code to execute")
	fs.StringVar(&args.Output, "output", "", "file or s3://bucket/key the response is written to, printed when empty")
	fs.DurationVar(&args.Timeout, "timeout", 30*time.Second, "")
	fs.StringVar(&args.Judge0URL, "judge0-url", execution.DefaultJudge0URL, "")
	fs.StringVar(&args.PistonURL, "piston-url", execution.DefaultPistonURL, "")
	fs.StringVar(&args.LogLevel, "log-level", "warn", "")

	if err := fs.Parse(arguments); err != nil {
		return args, err
	}

	return args, nil
}

// SourceCode returns the inline source or the contents of the source file.
func (t ToolArguments) SourceCode() (string, error) {
	if t.SourceFile == "" {
		return t.Source, nil
	}

	data, err := os.ReadFile(t.SourceFile)

	if err != nil {
		return "", err
	}

	return string(data), nil
}
