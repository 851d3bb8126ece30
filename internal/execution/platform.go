//go:generate stringer -type=Platform

package execution

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Platform is the remote code-execution service a request is sent to.
type Platform int

const (
	Judge0 Platform = iota + 1
	Piston
)

// ParsePlatform resolves a platform by name, ignoring case.
func ParsePlatform(name string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "judge0":
		return Judge0, nil
	case "piston":
		return Piston, nil
	}

	return 0, errors.Errorf("unsupported platform %q, expected judge0 or piston", name)
}

// ParseLanguage converts a textual language identifier into the form the
// platform expects and places it on the request. Judge0 identifies languages
// by integer id, Piston by name.
func ParseLanguage(platform Platform, language string, request *Request) error {
	language = strings.TrimSpace(language)

	switch platform {
	case Judge0:
		id, err := strconv.Atoi(language)

		if err != nil {
			return &ValidationError{Errors: []string{
				fmt.Sprintf("judge0 language identifier %q must be an integer", language),
			}}
		}

		request.LanguageID = id
	case Piston:
		request.Language = language
	default:
		return errors.Errorf("unsupported platform %s", platform)
	}

	return nil
}
