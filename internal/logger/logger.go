// Package logger configures the process-wide logrus logger and the echo
// request logging middleware.
package logger

import (
	"io"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"bookshelf/internal/errors"
)

// New returns a JSON logger writing to stdout at the given level.
// Unknown levels fall back to info.
func New(level string) *logrus.Logger {
	return NewWithOutput(level, os.Stdout)
}

// NewWithOutput is New with an explicit writer.
func NewWithOutput(level string, out io.Writer) *logrus.Logger {
	log := logrus.New()
	log.Formatter = &logrus.JSONFormatter{
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyTime:  "timestamp",
			logrus.FieldKeyLevel: "severity",
			logrus.FieldKeyMsg:   "message",
		},
		TimestampFormat: time.RFC3339Nano,
	}
	log.Out = out

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// Middleware logs one line per request once the handler has returned.
func Middleware(log *logrus.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				// Let echo write the error response so the status is final.
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()
			entry := log.WithFields(logrus.Fields{
				"http.req.method":   req.Method,
				"http.req.path":     req.URL.Path,
				"http.req.id":       res.Header().Get(echo.HeaderXRequestID),
				"http.resp.status":  res.Status,
				"http.resp.bytes":   res.Size,
				"http.resp.took_ms": time.Since(start).Milliseconds(),
			})
			switch {
			case res.Status >= 500:
				entry.WithError(cause(err)).Error("request failed")
			case res.Status >= 400:
				entry.Warn("request rejected")
			default:
				entry.Info("request complete")
			}
			return nil
		}
	}
}

// cause returns the internal error behind an echo HTTP error, if any.
func cause(err error) error {
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Internal != nil {
		return he.Internal
	}
	return err
}
