package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"mediagate/pkg/api"
	"mediagate/pkg/config"
	"mediagate/pkg/gateway"
)

func main() {
	portFlag := flag.Int("port", 0, "Port for the API server (overrides config)")
	keyFlag := flag.String("api-key", "", "Shared secret for the API (overrides config)")
	ytdlpFlag := flag.String("ytdlp", "", "Path to the yt-dlp binary")
	webFlag := flag.Bool("onweb", false, "Enable simple Web UI")
	debugFlag := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Configuration failed: %v\n", err)
		os.Exit(1)
	}
	if *portFlag > 0 {
		cfg.Port = *portFlag
	}
	if *keyFlag != "" {
		cfg.APIKey = *keyFlag
	}
	if *ytdlpFlag != "" {
		cfg.YtDlpPath = *ytdlpFlag
	}
	if *webFlag {
		cfg.WebUI = true
	}
	if *debugFlag {
		cfg.Debug = true
	}

	gw, err := gateway.New(gateway.Config{
		YtDlpPath:     cfg.YtDlpPath,
		CacheTTL:      time.Duration(cfg.CacheTTLSec) * time.Second,
		CookieBrowser: cfg.CookieBrowser,
		Debug:         cfg.Debug,
	})
	if err != nil {
		fmt.Printf("Initialization failed: %v\n", err)
		os.Exit(1)
	}

	if err := cfg.EnsureAPIKey(); err != nil {
		fmt.Printf("Initialization failed: %v\n", err)
		os.Exit(1)
	}

	srv := &api.Server{
		Port:    cfg.Port,
		Gateway: gw,
		APIKey:  cfg.APIKey,
		WebUI:   cfg.WebUI,
		Debug:   cfg.Debug,
	}

	if err := srv.Start(); err != nil {
		slog.Error("Server crashed", "err", err)
		os.Exit(1)
	}
}
