// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"strings"

	log "github.com/sirupsen/logrus"
)

// SetupParams selects the logger output.
type SetupParams struct {
	Level      string
	FormatJSON bool
	Output     io.Writer
}

// Setup applies params to the standard logrus logger.
func Setup(params SetupParams) {
	if params.FormatJSON {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	log.SetLevel(GetLevel(params.Level))
	if params.Output != nil {
		log.SetOutput(params.Output)
	}
}

// GetLevel parses a level name. Unknown names select warn, so an
// interactive session stays quiet.
func GetLevel(level string) log.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return log.TraceLevel
	case "debug":
		return log.DebugLevel
	case "info":
		return log.InfoLevel
	case "error":
		return log.ErrorLevel
	case "fatal":
		return log.FatalLevel
	default:
		return log.WarnLevel
	}
}
