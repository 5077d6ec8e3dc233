package config

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
)

func parseLevel(name string) (logrus.Level, error) {
	lvl, err := logrus.ParseLevel(name)
	if err != nil {
		return 0, fmt.Errorf("log.level: %w", err)
	}
	return lvl, nil
}

// NewLogger builds a logger writing to out. verbose forces debug level.
func (c LogConfig) NewLogger(out io.Writer, verbose bool) (*logrus.Logger, error) {
	lvl, err := parseLevel(c.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		lvl = logrus.DebugLevel
	}
	log := logrus.New()
	log.SetOutput(out)
	log.SetLevel(lvl)
	switch c.Format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	default:
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return log, nil
}
