// Package logger configures the logrus standard logger used across betlog.
package logger

import (
	"io"
	"os"

	"github.com/etnz/betlog/config"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Init configures the standard logger: level, text format, and an optional
// rotated log file written in addition to stderr.
func Init(cfg config.Log) {
	logrus.SetOutput(Writer(cfg, os.Stderr))
	logrus.SetLevel(Level(cfg.Level))
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "06-01-02 15:04:05",
	})
}

// Level parses a level name, defaulting to warn.
func Level(name string) logrus.Level {
	level, err := logrus.ParseLevel(name)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

// Writer returns the log destination: console alone, or console and a
// rotated file when cfg.File is set.
func Writer(cfg config.Log, console io.Writer) io.Writer {
	if cfg.File == "" {
		return console
	}
	return io.MultiWriter(console, &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSize,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAge,
		Compress:   cfg.Compress,
	})
}
