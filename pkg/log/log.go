package log

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"runtime"
	"strings"
	"sync"
	"time"

	contextPkg "BatiDetect/pkg/context"

	formatter "github.com/antonfisher/nested-logrus-formatter"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger *logrus.Logger
	once   sync.Once
)

const (
	RequestIDKey = "request_id"
	SessionIDKey = "session_id"
)

type Fields = logrus.Fields

// NewLogger returns the process logger. Outside APP_ENV=test it also writes
// to a daily rotated file under ./storage/logs.
func NewLogger() *logrus.Logger {
	once.Do(func() {
		logger = logrus.New()
		logger.SetLevel(levelFromEnv())

		logger.SetFormatter(&formatter.Formatter{
			NoColors:        os.Getenv("LOG_NO_COLORS") == "true",
			TimestampFormat: "02 Jan 06 - 15:04",
			HideKeys:        false,
			CallerFirst:     true,
			CustomCallerFormatter: func(f *runtime.Frame) string {
				s := strings.Split(f.Function, ".")
				funcName := s[len(s)-1]
				return fmt.Sprintf(" \x1b[%dm[%s:%d][%s()]", 34, path.Base(f.File), f.Line, funcName)
			},
		})

		writers := []io.Writer{os.Stderr}

		if os.Getenv("APP_ENV") != "test" {
			fileWriter := &lumberjack.Logger{
				Filename:   fmt.Sprintf("./storage/logs/app-%s.log", time.Now().Format("2006-01-02")),
				LocalTime:  true,
				Compress:   true,
				MaxSize:    100,
				MaxAge:     7,
				MaxBackups: 3,
			}
			writers = append(writers, fileWriter)
		}

		logger.SetOutput(io.MultiWriter(writers...))
		logger.SetReportCaller(true)
	})

	return logger
}

func levelFromEnv() logrus.Level {
	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		return logrus.DebugLevel
	}
	return level
}

// WithRequestID returns an entry of logger tagged with the request and
// session ids carried by ctx.
func WithRequestID(logger *logrus.Logger, ctx context.Context) *logrus.Entry {
	fields := Fields{RequestIDKey: "unknown"}
	if ctx != nil {
		fields[RequestIDKey] = contextPkg.GetRequestID(ctx)
		if sessionID := contextPkg.GetSessionID(ctx); sessionID != "" {
			fields[SessionIDKey] = sessionID
		}
	}

	return logger.WithFields(fields)
}

// ErrorWithTraceID logs msg on entry and returns the id a client can quote
// back: the entry's request id when known, a fresh uuid otherwise.
func ErrorWithTraceID(entry *logrus.Entry, msg string) string {
	traceID, _ := entry.Data[RequestIDKey].(string)
	if traceID == "" || traceID == "unknown" {
		id, err := uuid.NewRandom()
		if err != nil {
			entry.WithError(err).Error("[log.ErrorWithTraceID] failed to generate trace ID")
			traceID = "unknown"
		} else {
			traceID = id.String()
		}
	}

	entry.WithField("trace_id", traceID).Error(msg)

	return traceID
}
