package cli

import (
	"strings"

	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/rigidmotion/orient/logging"
	"github.com/rigidmotion/orient/utils"
)

const (
	rootLoggerName    = "orient"
	loggerMetadataKey = "logger"
)

// setupLogging builds the root CLI logger, writing to the app's error stream so that command
// output stays machine readable.
func setupLogging(c *cli.Context) error {
	patterns := make([]logging.LoggerPatternConfig, 0, len(c.StringSlice(flagLogLevel)))
	for _, s := range c.StringSlice(flagLogLevel) {
		pattern, err := logging.ParseLoggerPatternConfig(s)
		if err != nil {
			return err
		}
		patterns = append(patterns, pattern)
	}

	// command loggers from an earlier run still point at that run's writers
	stale := lo.Filter(logging.GetRegisteredLoggerNames(), func(name string, _ int) bool {
		return strings.HasPrefix(name, rootLoggerName+".")
	})
	for _, name := range stale {
		logging.DeregisterLogger(name)
	}

	logger := logging.NewBlankLogger(rootLoggerName)
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logging.RegisterLogger(rootLoggerName, logger)
	if err := logging.UpdateLoggerRegistry(patterns); err != nil {
		return err
	}

	logging.GlobalLogLevel.SetLevel(zap.InfoLevel)
	if c.Bool(flagDebug) {
		// commands inherit this context, so their CDebug calls log regardless of level
		c.Context = logging.EnableDebugMode(c.Context, "")
		logger.SetLevel(logging.DEBUG)
		logging.GlobalLogLevel.SetLevel(zap.DebugLevel)
		logger.CDebugw(c.Context, "debug logging enabled", "session", logging.GetName(c.Context))
	}
	logging.ReplaceGlobal(logger)

	if c.App.Metadata == nil {
		c.App.Metadata = map[string]interface{}{}
	}
	c.App.Metadata[loggerMetadataKey] = logger
	return nil
}

// commandLogger returns the logger for the running command, named after it.
func commandLogger(c *cli.Context) logging.Logger {
	logger, err := utils.AssertType[logging.Logger](c.App.Metadata[loggerMetadataKey])
	if err != nil {
		logger = logging.Global()
		logger.Debugw("no command logger configured", "error", err)
	}
	if c.Command == nil || c.Command.Name == "" {
		return logger
	}
	return logger.Sublogger(c.Command.Name)
}
