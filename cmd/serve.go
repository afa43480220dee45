package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joescharf/changeflow/internal/api"
	"github.com/joescharf/changeflow/internal/daemon"
	webui "github.com/joescharf/changeflow/internal/ui"
)

const (
	shutdownTimeout = 5 * time.Second
	stopTimeout     = 5 * time.Second
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web UI and JSON API server",
	Long: `Start an HTTP server that serves the embedded change advisor UI and the
/api/v1 JSON API. By default it listens on port 8080. Use --port to change it.

Use 'serve start' to run it in the background and 'serve stop' to stop it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveRun(cmd.Context(), viper.GetInt("port"))
	},
}

var serveStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the server in the background",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveStartRun()
	},
}

var serveStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the background server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveStopRun()
	},
}

var serveStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show whether the background server is running",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveStatusRun()
	},
}

func init() {
	serveCmd.PersistentFlags().IntP("port", "p", 8080, "port to listen on")
	_ = viper.BindPFlag("port", serveCmd.PersistentFlags().Lookup("port"))

	serveCmd.AddCommand(serveStartCmd)
	serveCmd.AddCommand(serveStopCmd)
	serveCmd.AddCommand(serveStatusCmd)
	rootCmd.AddCommand(serveCmd)
}

func pidFile() *daemon.PIDFile {
	return daemon.NewPIDFile(statePath("changeflow-serve.pid"))
}

func serveLogPath() string {
	return statePath("changeflow-serve.log")
}

// newServeHandler wires the API under the embedded UI.
func newServeHandler() (http.Handler, error) {
	apiServer := api.NewServer(newSuggester(), logger)
	handler, err := webui.Handler(apiServer.Router())
	if err != nil {
		return nil, fmt.Errorf("failed to initialize UI handler: %w", err)
	}
	return handler, nil
}

func serveRun(ctx context.Context, port int) error {
	if err := ensureStateDir(); err != nil {
		return err
	}
	pf := pidFile()
	if err := pf.Acquire(); err != nil {
		if errors.Is(err, daemon.ErrAlreadyRunning) {
			return fmt.Errorf("server already running (%v); use 'changeflow serve stop'", err)
		}
		return fmt.Errorf("write PID file: %w", err)
	}
	defer func() { _ = pf.Release() }()

	handler, err := newServeHandler()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, shutdownSignals()...)
	defer stop()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	ui.Info("Serving UI at http://localhost:%d", port)
	logger.Info("server started", "addr", srv.Addr, "llm", newLLMClient() != nil)

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func serveStartRun() error {
	pf := pidFile()
	if pid, running := pf.IsRunning(); running {
		return fmt.Errorf("server already running (pid %d)", pid)
	}
	if err := ensureStateDir(); err != nil {
		return err
	}

	port := viper.GetInt("port")
	if dryRun {
		ui.DryRunMsg("Would start server on port %d (log: %s)", port, serveLogPath())
		return nil
	}

	exe, err := os.Executable()
	if err != nil {
		return fmt.Errorf("locate executable: %w", err)
	}

	logFile, err := os.OpenFile(serveLogPath(), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer func() { _ = logFile.Close() }()

	args := []string{"serve", "--port", strconv.Itoa(port)}
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		args = append(args, "--config", cfgFile)
	}
	child := exec.Command(exe, args...)
	child.Stdout = logFile
	child.Stderr = logFile
	detachChild(child)

	if err := child.Start(); err != nil {
		return fmt.Errorf("start server: %w", err)
	}
	pid := child.Process.Pid
	_ = child.Process.Release()

	ui.Success("Server started (pid %d) at http://localhost:%d", pid, port)
	ui.Info("Log: %s", serveLogPath())
	return nil
}

func serveStopRun() error {
	pf := pidFile()
	pid, running := pf.IsRunning()
	if !running {
		// Clear any stale file left by a server that died without cleaning up.
		_ = pf.Remove()
		return errors.New("server is not running")
	}

	if dryRun {
		ui.DryRunMsg("Would stop server (pid %d)", pid)
		return nil
	}

	if err := pf.Signal(stopSignal()); err != nil {
		return fmt.Errorf("signal server: %w", err)
	}
	if !pf.WaitExit(stopTimeout, 100*time.Millisecond) {
		ui.Warning("Server did not exit after %s, killing", stopTimeout)
		if err := pf.Signal(killSignal()); err != nil {
			return fmt.Errorf("kill server: %w", err)
		}
	}
	_ = pf.Remove()

	ui.Success("Server stopped (pid %d)", pid)
	return nil
}

func serveStatusRun() error {
	pf := pidFile()
	pid, running := pf.IsRunning()
	if !running {
		ui.Info("Server not running")
		return nil
	}
	ui.Success("Server running (pid %d) at http://localhost:%d", pid, viper.GetInt("port"))
	ui.Info("Log: %s", serveLogPath())
	return nil
}
