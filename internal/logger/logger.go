package logger

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

// Initialize sets up the application logger. Level comes from LOG_LEVEL;
// output goes to logs/scms.log, falling back to stderr if the file cannot
// be opened.
func Initialize() {
	Logger = logrus.New()

	logLevel := os.Getenv("LOG_LEVEL")
	var level logrus.Level
	switch logLevel {
	case "DEBUG":
		level = logrus.DebugLevel
	case "INFO":
		level = logrus.InfoLevel
	case "WARN":
		level = logrus.WarnLevel
	case "ERROR":
		level = logrus.ErrorLevel
	default:
		level = logrus.InfoLevel
	}

	Logger.SetLevel(level)
	Logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableColors:   true,
	})

	logsDir := "logs"
	if err := os.MkdirAll(logsDir, 0755); err != nil {
		fmt.Printf("Failed to create logs directory: %v\n", err)
		return
	}

	logFile, err := os.OpenFile(
		fmt.Sprintf("%s/scms.log", logsDir),
		os.O_CREATE|os.O_WRONLY|os.O_APPEND,
		0666,
	)
	if err != nil {
		fmt.Printf("Failed to open log file: %v\n", err)
		return
	}

	Logger.SetOutput(logFile)

	Logger.WithFields(logrus.Fields{
		"log_level": level.String(),
		"log_file":  fmt.Sprintf("%s/scms.log", logsDir),
	}).Info("Logging system initialized")
}

// GetLogger returns the configured logger instance.
func GetLogger() *logrus.Logger {
	if Logger == nil {
		Initialize()
	}
	return Logger
}

// WithComplaint creates a logger with complaint context.
func WithComplaint(complaintID string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"complaint_id": complaintID,
		"component":    "complaint_service",
	})
}

// WithActor creates a logger with admin actor context.
func WithActor(actor string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"actor":     actor,
		"component": "admin_service",
	})
}

// WithError creates a logger with error context.
func WithError(err error, component string) *logrus.Entry {
	return GetLogger().WithFields(logrus.Fields{
		"error":     err.Error(),
		"component": component,
	})
}

// Log level convenience functions (with fields).
func Debug(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Debug(msg)
}

func Info(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Info(msg)
}

func Warn(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Warn(msg)
}

func Error(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Error(msg)
}

func Fatal(msg string, fields map[string]interface{}) {
	if fields == nil {
		fields = make(map[string]interface{})
	}
	GetLogger().WithFields(fields).Fatal(msg)
}
