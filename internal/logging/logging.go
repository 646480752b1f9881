package logging

import (
	"fmt"
	"os"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"
)

type Options struct {
	Development bool
	Level       string // overrides the level picked from Development
	File        string // rotated log file written next to stderr output
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
}

// OptionsFromEnv reads LOG_LEVEL, LOG_FILE and LOG_FILE_MAX_{SIZE,BACKUPS,AGE}.
func OptionsFromEnv(development bool) Options {
	opts := Options{
		Development: development,
		Level:       os.Getenv("LOG_LEVEL"),
		File:        os.Getenv("LOG_FILE"),
		MaxSizeMB:   50,
		MaxBackups:  3,
		MaxAgeDays:  28,
	}
	for name, dst := range map[string]*int{
		"LOG_FILE_MAX_SIZE":    &opts.MaxSizeMB,
		"LOG_FILE_MAX_BACKUPS": &opts.MaxBackups,
		"LOG_FILE_MAX_AGE":     &opts.MaxAgeDays,
	} {
		if v, err := strconv.Atoi(os.Getenv(name)); err == nil && v > 0 {
			*dst = v
		}
	}
	return opts
}

// Setup configures every given logger the same way.
func Setup(opts Options, loggers ...*logrus.Logger) error {
	level := logrus.InfoLevel
	if opts.Development {
		level = logrus.DebugLevel
	}
	if opts.Level != "" {
		parsed, err := logrus.ParseLevel(opts.Level)
		if err != nil {
			return fmt.Errorf("invalid log level: %w", err)
		}
		level = parsed
	}

	var hook logrus.Hook
	if opts.File != "" {
		var err error
		hook, err = rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
			Filename:   opts.File,
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Level:      level,
			Formatter:  &logrus.JSONFormatter{},
		})
		if err != nil {
			return fmt.Errorf("unable to create log file hook: %w", err)
		}
	}

	for _, log := range loggers {
		log.SetLevel(level)
		log.SetFormatter(&logrus.TextFormatter{ForceColors: opts.Development, FullTimestamp: true})
		if hook != nil {
			log.AddHook(hook)
		}
	}
	return nil
}
