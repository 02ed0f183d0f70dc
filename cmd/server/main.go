// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"

	"github.com/girder/swarm-logs-server/internal/api"
	"github.com/girder/swarm-logs-server/internal/config"
	"github.com/girder/swarm-logs-server/internal/swarm"
)

// --- Version Info ---
var (
	version = "development"
	commit  = "none"
	date    = "unknown"
)

// --- Swagger annotations ---
// @title Swarm Service Logs API
// @version 1.0
// @description Streams the logs of Docker Swarm services over HTTP.
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @schemes http https

func main() {
	// --- Define and Parse Command Line Flags ---
	var showVersion bool
	var envFile string
	defaultEnvFile := ".env"

	flag.BoolVar(&showVersion, "version", false, "Print server version and exit")
	flag.BoolVar(&showVersion, "v", false, "Print server version and exit (shorthand)")
	flag.StringVar(&envFile, "env-file", defaultEnvFile, "Path to the .env configuration file")
	flag.Parse()

	if showVersion {
		fmt.Printf("swarm-logs-server version: %s\n", version)
		fmt.Printf("commit: %s\n", commit)
		fmt.Printf("built: %s\n", date)
		os.Exit(0)
	}

	// --- Load configuration First ---
	basicLogger := log.New(os.Stderr)
	basicLogger.Infof("Attempting to load configuration from '%s' and environment variables...", envFile)
	err := config.LoadConfig(envFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && envFile == defaultEnvFile {
			basicLogger.Infof("Default config file '%s' not found. Using environment variables and defaults.", defaultEnvFile)
			if err := config.LoadConfig(""); err != nil {
				basicLogger.Fatalf("Failed to load configuration: %v", err)
			}
		} else {
			basicLogger.Fatalf("Failed to load configuration: %v", err)
		}
	}

	// --- Initialize Logger Based on Config ---
	log.SetOutput(os.Stderr)
	log.SetTimeFormat("2006-01-02 15:04:05")
	switch strings.ToLower(config.AppConfig.LogLevel) {
	case "debug":
		log.SetLevel(log.DebugLevel)
	case "info":
		log.SetLevel(log.InfoLevel)
	default:
		log.Warnf("Invalid LOG_LEVEL '%s', defaulting to 'info'", config.AppConfig.LogLevel)
		log.SetLevel(log.InfoLevel)
	}
	log.Infof("swarm-logs-server version %s starting...", version)

	// --- Initialize Docker client ---
	swarmService, err := swarm.NewService(config.AppConfig.DockerAPIVersion)
	if err != nil {
		log.Fatalf("Failed to initialize Docker client: %v", err)
	}
	defer swarmService.Close()
	if config.AppConfig.DockerAPIVersion != "" {
		log.Infof("Docker client initialized (API version %s)", config.AppConfig.DockerAPIVersion)
	} else {
		log.Info("Docker client initialized (API version negotiated with the daemon)")
	}
	if config.AppConfig.LogsStreamTimeout > 0 {
		log.Infof("Log streams are limited to %s", config.AppConfig.LogsStreamTimeout)
	}

	// --- Initialize Gin router ---
	if strings.ToLower(config.AppConfig.GinMode) == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
	log.Infof("Gin running in '%s' mode", gin.Mode())
	router := gin.New()
	router.Use(gin.Logger(), gin.CustomRecovery(api.RecoveryHandler))

	// Configure trusted proxies
	if config.AppConfig.TrustedProxies == "nil" {
		log.Info("Proxy trust disabled (TRUSTED_PROXIES=nil)")
		_ = router.SetTrustedProxies(nil)
	} else if config.AppConfig.TrustedProxies != "" {
		proxyList := strings.Split(config.AppConfig.TrustedProxies, ",")
		for i, proxy := range proxyList {
			proxyList[i] = strings.TrimSpace(proxy)
		}
		log.Infof("Setting trusted proxies: %v", proxyList)
		if err := router.SetTrustedProxies(proxyList); err != nil {
			log.Warnf("Error setting trusted proxies: %v. Using default.", err)
		}
	}

	handlers := api.NewHandlers(swarmService, version, config.AppConfig.LogsStreamTimeout)
	if err := api.SetupRoutes(router, handlers); err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	srv := &http.Server{
		Addr:    config.AppConfig.ListenAddr(),
		Handler: router,
	}

	// --- Start Server Goroutine ---
	go func() {
		if config.AppConfig.TLSEnable {
			if config.AppConfig.TLSCertFile == "" || config.AppConfig.TLSKeyFile == "" {
				log.Fatalf("TLS is enabled but TLS_CERT_FILE or TLS_KEY_FILE is not set.")
			}
			log.Infof("Starting HTTPS server on %s", srv.Addr)
			if err := srv.ListenAndServeTLS(config.AppConfig.TLSCertFile, config.AppConfig.TLSKeyFile); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to start HTTPS server: %v", err)
			}
		} else {
			log.Infof("Starting HTTP server on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Fatalf("Failed to start HTTP server: %v", err)
			}
		}
		log.Info("Server listener stopped.")
	}()

	// --- Graceful Shutdown Handling ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Infof("Received signal: %s. Shutting down server...", sig)

	ctx, cancel := context.WithTimeout(context.Background(), config.AppConfig.ShutdownTimeout)
	defer cancel()

	// Open log streams keep their requests alive; Shutdown waits for them up to the deadline.
	if err := srv.Shutdown(ctx); err != nil {
		log.Errorf("Server forced to shutdown: %v", err)
		_ = srv.Close()
	}

	log.Info("Server exiting gracefully.")
}
