package cmd

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
)

var logOut *os.File

// setupLogging installs the process logger. Plain commands log warnings to
// stderr; quiet suppresses stderr entirely. --log-file always wins.
func setupLogging(quiet bool) error {
	level := log.LevelWarn
	if verbose {
		level = log.LevelDebug
	}

	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		logOut = f
		if !verbose {
			level = log.LevelInfo
		}
		log.SetDefault(log.NewLogger(log.LogfmtHandlerWithLevel(f, level)))
		return nil
	}

	if quiet {
		log.SetDefault(log.NewLogger(log.DiscardHandler()))
		return nil
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, level, isTerminal(os.Stderr))))
	return nil
}

func closeLogging() error {
	if logOut == nil {
		return nil
	}
	err := logOut.Close()
	logOut = nil
	return err
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
