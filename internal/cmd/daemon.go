package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"syscall"

	"github.com/cjorgensenmd/ds4drv/internal/configpaths"

	"golang.org/x/term"
)

// daemonEnvVar marks a re-executed child so it does not fork again.
const daemonEnvVar = "DS4DRV_DAEMONIZED"

// shouldFork reports whether --daemon should actually detach. A child
// that was already re-executed must not fork again, and a process
// started without a controlling terminal (e.g. by an init system) is
// effectively detached already.
func shouldFork() bool {
	if os.Getenv(daemonEnvVar) != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// daemonize re-executes the process in a new session with the standard
// streams pointed at /dev/null and logging redirected to the cache log
// file. The parent returns nil so the foreground process exits cleanly.
func daemonize(logger *slog.Logger) error {
	logFile := os.Getenv("DS4DRV_LOG_FILE")
	if logFile == "" {
		var err error
		logFile, err = configpaths.DefaultLogFile()
		if err != nil {
			return fmt.Errorf("failed to resolve daemon log file: %w", err)
		}
	}
	if err := configpaths.EnsureDir(logFile); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to fork: %w", err)
	}
	devNull, err := os.OpenFile(os.DevNull, os.O_RDWR, 0)
	if err != nil {
		return fmt.Errorf("failed to fork: %w", err)
	}
	defer func() { _ = devNull.Close() }()

	logger.Info("Forking into background", "log", logFile)

	attr := &os.ProcAttr{
		Dir: "/",
		Env: append(os.Environ(),
			daemonEnvVar+"=1",
			"DS4DRV_LOG_FILE="+logFile,
		),
		Files: []*os.File{devNull, devNull, devNull},
		Sys:   &syscall.SysProcAttr{Setsid: true},
	}
	proc, err := os.StartProcess(exe, os.Args, attr)
	if err != nil {
		return fmt.Errorf("failed to fork: %w", err)
	}
	return proc.Release()
}
