package utils

import (
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

// Environment variables controlling the logger.
const (
	LogLevelEnv = "V2X_LOG_LEVEL"
	LogStyleEnv = "V2X_LOG_STYLE"
)

// NewLogger returns a logrus logger writing to w. The level is taken from
// V2X_LOG_LEVEL (default info) and the color style from V2X_LOG_STYLE,
// which accepts "always" (default), "never" and "auto". The style also
// applies to the text decorated with DecorateText.
func NewLogger(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)

	level, err := logrus.ParseLevel(envOr(LogLevelEnv, "info"))
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	formatter := &logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05.000",
	}
	switch strings.ToLower(envOr(LogStyleEnv, "always")) {
	case "always":
		formatter.ForceColors = true
		SetColors(true)
	case "never":
		formatter.DisableColors = true
		SetColors(false)
	default:
		f, ok := w.(*os.File)
		SetColors(ok && term.IsTerminal(int(f.Fd())))
	}
	logger.SetFormatter(formatter)

	return logger
}

func envOr(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}
