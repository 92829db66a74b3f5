// Package logrusconfig provides the logger configuration used across this
// repository.
package logrusconfig

import (
	"io/ioutil"

	prefixed "github.com/BertoldVdb/logrus-prefixed-formatter"
	"github.com/sirupsen/logrus"
)

// GetLogger returns a logger with the prefixed text formatter at the given
// level.
func GetLogger(level logrus.Level) *logrus.Entry {
	logrus.ErrorKey = "$error"

	logger := logrus.New()
	logger.SetLevel(level)

	customFormatter := new(prefixed.TextFormatter)
	customFormatter.TimestampFormat = "2006-01-02 15:04:05"
	customFormatter.FullTimestamp = true
	customFormatter.PrefixPadding = 20
	customFormatter.SpacePadding = 50
	logger.SetFormatter(customFormatter)

	return logrus.NewEntry(logger)
}

// GetTestLogger returns a debug level logger that discards all output. It is
// used by tests that want lifecycle logging code paths exercised without
// polluting the test output.
func GetTestLogger() *logrus.Entry {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetOutput(ioutil.Discard)

	return logrus.NewEntry(logger)
}
