package tools

import (
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

func InitLogger(verbose bool) {
	Log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
		DisableColors:   false,
		PadLevelText:    true,
	})

	level := logrus.InfoLevel
	if verbose {
		level = logrus.DebugLevel
	}
	if env := strings.TrimSpace(os.Getenv("LOG_LEVEL")); env != "" {
		if parsed, err := logrus.ParseLevel(env); err == nil {
			level = parsed
		}
	}
	Log.SetLevel(level)
}

func LogRunSummary(groups, changed, violations, skipped int) {
	Log.Infof("groups=%d changed=%d violations=%d etag-skipped=%d", groups, changed, violations, skipped)
}
