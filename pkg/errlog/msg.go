// Package errlog writes the messages of the command line tools to
// stderr or to a log file.
//
// Warnings and errors are prefixed by a marker on every line:
//
//	WARNING>>> fw1: unknown vendor
//	ERROR>>> Can't open configs: no such file or directory
package errlog

import (
	"fmt"
	"io"
	"os"
	"path"
	"strings"

	"github.com/cfgfacts/cfgfacts/pkg/mytime"
	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Quiet suppresses messages of Info.
var Quiet bool

const deviceKey = "device"

var logger = newLogger()

// stderr resolves os.Stderr on each write, so output follows a
// redirected os.Stderr.
type stderr struct{}

func (stderr) Write(p []byte) (int, error) { return os.Stderr.Write(p) }

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(stderr{})
	l.SetLevel(logrus.InfoLevel)
	l.SetFormatter(markerFormatter{})
	return l
}

type markerFormatter struct{}

func (markerFormatter) Format(e *logrus.Entry) ([]byte, error) {
	var m string
	switch e.Level {
	case logrus.TraceLevel, logrus.DebugLevel:
		m = "DEBUG>>> "
	case logrus.WarnLevel:
		m = "WARNING>>> "
	case logrus.ErrorLevel, logrus.FatalLevel, logrus.PanicLevel:
		m = "ERROR>>> "
	}
	msg := strings.TrimSuffix(e.Message, "\n")
	if d, found := e.Data[deviceKey]; found {
		msg = fmt.Sprintf("%v: %s", d, msg)
	}
	keys := maps.Keys(e.Data)
	slices.Sort(keys)
	for _, k := range keys {
		if k != deviceKey {
			msg += fmt.Sprintf(" %s=%v", k, e.Data[k])
		}
	}
	return []byte(withMarker(m, msg) + "\n"), nil
}

func withMarker(m, s string) string {
	return m + strings.ReplaceAll(s, "\n", "\n"+m)
}

func Info(format string, args ...any) {
	if !Quiet {
		logger.Infof(format, args...)
	}
}

func Warning(format string, args ...any) {
	logger.Warnf(format, args...)
}

func Debug(format string, args ...any) {
	logger.Debugf(format, args...)
}

// WithDevice returns a log entry whose messages are prefixed by the
// name of device.
func WithDevice(device string) *logrus.Entry {
	return logger.WithField(deviceKey, device)
}

// SetLevel sets the minimum level of messages, e.g. "debug" or "warn".
func SetLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	logger.SetLevel(l)
	return nil
}

// SetOutput redirects all messages to w.
func SetOutput(w io.Writer) {
	logger.SetOutput(w)
}

// SetStderrLog writes messages to file fname. An existing file is
// renamed first. Messages go to stderr if fname is empty.
func SetStderrLog(fname string) {
	logger.SetOutput(stderr{})
	if fname != "" {
		MoveLogFile(fname)
		fh, err := CreateWithPath(fname)
		if err != nil {
			Abort("Can't %v", err)
		}
		logger.SetOutput(fh)
	}
}

// Rename existing logfile.
func MoveLogFile(fname string) {
	if _, err := os.Stat(fname); err == nil {
		os.Rename(fname, fmt.Sprintf("%s.%d", fname, mytime.Now().Unix()))
	}
}

func CreateWithPath(fname string) (*os.File, error) {
	dir := path.Dir(fname)
	err := os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}
	return os.OpenFile(fname, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0666)
}
