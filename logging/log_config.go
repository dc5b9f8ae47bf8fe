package logging

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// LoggerPatternConfig sets the level of every logger whose name matches Pattern.
type LoggerPatternConfig struct {
	Pattern string `json:"pattern"`
	Level   string `json:"level"`
}

const (
	// Regular expressions for logger names. Examples describe the regular expression that follows.

	// e.g. "foo".
	validLoggerSectionName = `[a-zA-Z0-9]+([_-]*[a-zA-Z0-9]+)*`
	// e.g. "foo" or "*".
	validLoggerSectionNameWithWildcard = `(` + validLoggerSectionName + `|\*)`
	// e.g. "foo.*.foo".
	validLoggerSectionsWithWildcard = validLoggerSectionNameWithWildcard + `(\.` + validLoggerSectionNameWithWildcard + `)*`
	// Restricts above regex to be the entire pattern.
	validLoggerName = `^` + validLoggerSectionsWithWildcard + `$`
)

var loggerPatternRegexp = regexp.MustCompile(validLoggerName)

func validatePattern(pattern string) bool {
	return loggerPatternRegexp.MatchString(pattern)
}

func buildRegexFromPattern(pattern string) string {
	var matcher strings.Builder
	matcher.WriteRune('^')
	for _, ch := range pattern {
		switch ch {
		case '*':
			matcher.WriteString(`.*`)
		case '.':
			matcher.WriteString(`\.`)
		default:
			matcher.WriteRune(ch)
		}
	}
	matcher.WriteRune('$')
	return matcher.String()
}

// ParseLoggerPatternConfig parses "pattern=level", e.g. "orient.slerp=debug".
func ParseLoggerPatternConfig(s string) (LoggerPatternConfig, error) {
	pattern, level, found := strings.Cut(s, "=")
	if !found {
		return LoggerPatternConfig{}, errors.Errorf("log level %q must look like pattern=level", s)
	}
	if !validatePattern(pattern) {
		return LoggerPatternConfig{}, errors.Errorf("invalid logger pattern %q", pattern)
	}
	if _, err := LevelFromString(level); err != nil {
		return LoggerPatternConfig{}, err
	}
	return LoggerPatternConfig{Pattern: pattern, Level: level}, nil
}
