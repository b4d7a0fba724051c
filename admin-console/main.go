package main

import (
	"fmt"
	"net/http"
	"os"

	"bella-vista/admin-console/internal/auth"
	"bella-vista/admin-console/internal/controller"
	"bella-vista/admin-console/internal/ui"
	"bella-vista/client"
	"bella-vista/config"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	// The console owns the terminal; logs only go to LOG_FILE.
	logger := zap.NewNop()
	if cfg.LogFile != "" {
		logger = config.NewLogger(cfg, "admin-console")
	}
	defer logger.Sync()

	resources, err := client.New(cfg, logger)
	if err != nil {
		fmt.Fprintln(os.Stderr, "admin-console:", err)
		os.Exit(1)
	}
	defer resources.Close()

	var feed controller.ActivityFeed
	if cfg.Client.Backend != client.BackendLocal {
		feed = controller.NewActivityClient(cfg.ActivitySvcURL, &http.Client{Timeout: cfg.Client.Timeout})
	}

	ctrl := controller.New(controller.NewStore(), resources.Set, feed, logger)
	gate := auth.NewGate(auth.Credentials{Email: cfg.Admin.Email, Password: cfg.Admin.Password})

	logger.Info("admin console starting", zap.String("backend", cfg.Client.Backend))
	if _, err := tea.NewProgram(ui.New(gate, ctrl), tea.WithAltScreen()).Run(); err != nil {
		logger.Error("admin console failed", zap.Error(err))
		fmt.Fprintln(os.Stderr, "admin-console:", err)
		os.Exit(1)
	}
}
