package logger

import (
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Log *logrus.Logger

// Init configures the application logger. In release mode output goes to a
// rotated JSON log file, otherwise to stdout with colors.
func Init(level, mode string) {
	Log = logrus.New()

	switch level {
	case "debug":
		Log.SetLevel(logrus.DebugLevel)
	case "warn":
		Log.SetLevel(logrus.WarnLevel)
	case "error":
		Log.SetLevel(logrus.ErrorLevel)
	default:
		Log.SetLevel(logrus.InfoLevel)
	}

	if mode == "release" {
		Log.SetFormatter(&logrus.JSONFormatter{
			TimestampFormat: "2006-01-02 15:04:05",
		})
		Log.SetOutput(&lumberjack.Logger{
			Filename:   "logs/gamescout.log",
			MaxSize:    10, // MB
			MaxBackups: 5,
			MaxAge:     30, // days
			Compress:   true,
		})
	} else {
		Log.SetFormatter(&logrus.TextFormatter{
			FullTimestamp:   true,
			TimestampFormat: "2006-01-02 15:04:05",
		})
		Log.SetOutput(os.Stdout)
	}
}

// L returns the configured logger, initializing a default one if Init was
// never called (keeps tests and small tools working).
func L() *logrus.Logger {
	if Log == nil {
		Init("info", "")
	}
	return Log
}
