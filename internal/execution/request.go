package execution

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

const (
	// DefaultPistonVersion asks Piston for the newest installed runtime of the language.
	DefaultPistonVersion = "*"
	// DefaultPistonFileName is the name given to the single source file sent to Piston.
	DefaultPistonFileName = "main.py"
)

type Request struct {
	// The remote service the source code will be executed on. This decides the
	// wire format of the request and which of the language fields is used.
	Platform Platform
	// The Judge0 language id, e.g. 71 for Python 3. Only used by Judge0.
	LanguageID int
	// The Piston language name, e.g. python. Only used by Piston.
	Language string
	// The Piston runtime version. Empty selects DefaultPistonVersion.
	Version string
	// The name of the file the source code is sent as. Empty selects
	// DefaultPistonFileName. Only used by Piston.
	FileName string
	// The source code to execute, sent unmodified.
	SourceCode string `validate:"required"`
}

func (r *Request) MarshalZerologObject(e *zerolog.Event) {
	e.Str("platform", r.Platform.String()).
		Int("sourceBytes", len(r.SourceCode))

	switch r.Platform {
	case Judge0:
		e.Int("languageId", r.LanguageID)
	case Piston:
		e.Str("language", r.Language).Str("version", r.version())
	}
}

func (r *Request) version() string {
	if r.Version == "" {
		return DefaultPistonVersion
	}

	return r.Version
}

func (r *Request) fileName() string {
	if r.FileName == "" {
		return DefaultPistonFileName
	}

	return r.FileName
}

// requestStructLevelValidation checks that the language identifier matches what
// the target platform expects.
func requestStructLevelValidation(sl validator.StructLevel) {
	request := sl.Current().Interface().(Request)

	switch request.Platform {
	case Judge0:
		if request.LanguageID <= 0 {
			sl.ReportError(request.LanguageID, "LanguageID", "LanguageID", "gt", "0")
		}
	case Piston:
		if strings.TrimSpace(request.Language) == "" {
			sl.ReportError(request.Language, "Language", "Language", "required", "")
		}
	default:
		sl.ReportError(request.Platform, "Platform", "Platform", "oneof", "Judge0 Piston")
	}
}
