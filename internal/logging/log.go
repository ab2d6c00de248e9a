// Package logging configures the process-wide logrus logger.
package logging

import (
	"io"
	"path/filepath"

	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Console is the logPath value that keeps logs on the console writer.
const Console = "console"

// InitLog parses and sets the log level. Logs go to console unless logPath
// names a file, which is rotated.
func InitLog(logLevel string, logPath string, console io.Writer) error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}

	if logPath != "" && logPath != Console {
		log.SetOutput(io.Writer(&lumberjack.Logger{
			// Log file absolute path, os agnostic
			Filename:   filepath.ToSlash(logPath),
			MaxSize:    5, // MB
			MaxBackups: 3,
			MaxAge:     30, // days
			Compress:   true,
		}))
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, DisableColors: true})
	} else {
		log.SetOutput(console)
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}

	log.SetLevel(level)
	return nil
}
