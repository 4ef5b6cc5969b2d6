package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/2063ti/flugede-gadgets-store/internal/app"
	"github.com/2063ti/flugede-gadgets-store/internal/config"
	"github.com/2063ti/flugede-gadgets-store/internal/logger"
	"github.com/2063ti/flugede-gadgets-store/internal/models"

	"github.com/gin-gonic/gin"
)

const (
	ansiReset     = "\033[0m"
	ansiBold      = "\033[1m"
	ansiDim       = "\033[2m"
	ansiGreen     = "\033[32m"
	ansiBlue      = "\033[34m"
	ansiCyan      = "\033[36m"
	ansiBrightMag = "\033[95m"
)

func main() {
	printStartupBanner()

	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()

	if cfg.Server.Mode == "release" {
		if isWeakSecret(cfg.JWT.SecretKey) || isWeakSecret(cfg.UserJWT.SecretKey) {
			stdLog.Fatalf("JWT secret is weak or still the default, configure a strong random key in production")
		}
	} else if isWeakSecret(cfg.JWT.SecretKey) || isWeakSecret(cfg.UserJWT.SecretKey) {
		stdLog.Printf("warning: JWT secret is weak or still the default, replace it before going to production")
	}

	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("database init failed: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("database migration failed: %v", err)
	}

	defaultAdminEmail := os.Getenv("FLG_DEFAULT_ADMIN_EMAIL")
	defaultAdminPass := os.Getenv("FLG_DEFAULT_ADMIN_PASSWORD")
	if cfg.Server.Mode == "release" && defaultAdminPass == "" {
		stdLog.Printf("warning: FLG_DEFAULT_ADMIN_PASSWORD not set, skipped default admin init")
	} else if err := models.InitDefaultAdmin(defaultAdminEmail, defaultAdminPass); err != nil {
		stdLog.Printf("warning: default admin init failed: %v", err)
	}

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	mode := flag.String("mode", app.ModeAll, "run mode: all / api / worker")
	flag.Parse()
	switch *mode {
	case app.ModeAll, app.ModeAPI, app.ModeWorker:
	default:
		stdLog.Fatalf("unknown run mode: %s", *mode)
	}

	if err := app.Run(app.Options{
		Config:  cfg,
		Logger:  logger.S(),
		Signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		Mode:    *mode,
	}); err != nil {
		stdLog.Fatalf("service run failed: %v", err)
	}
}

func printStartupBanner() {
	fmt.Println(ansiBrightMag + "╔══════════════════════════════════════════════════════╗" + ansiReset)
	fmt.Println(ansiBrightMag + "║         🛒 Flugede Gadgets Store API starting        ║" + ansiReset)
	fmt.Println(ansiBrightMag + "╚══════════════════════════════════════════════════════╝" + ansiReset)
	fmt.Println(ansiCyan + "███████╗██╗     ██╗   ██╗ ██████╗ ███████╗██████╗ ███████╗" + ansiReset)
	fmt.Println(ansiCyan + "██╔════╝██║     ██║   ██║██╔════╝ ██╔════╝██╔══██╗██╔════╝" + ansiReset)
	fmt.Println(ansiCyan + "█████╗  ██║     ██║   ██║██║  ███╗█████╗  ██║  ██║█████╗  " + ansiReset)
	fmt.Println(ansiCyan + "██╔══╝  ██║     ██║   ██║██║   ██║██╔══╝  ██║  ██║██╔══╝  " + ansiReset)
	fmt.Println(ansiCyan + "██║     ███████╗╚██████╔╝╚██████╔╝███████╗██████╔╝███████╗" + ansiReset)
	fmt.Println(ansiCyan + "╚═╝     ╚══════╝ ╚═════╝  ╚═════╝ ╚══════╝╚═════╝ ╚══════╝" + ansiReset)
	fmt.Println(ansiGreen + ansiBold + "Flugede Gadgets Store" + ansiReset)
	fmt.Println(ansiBlue + "• API:   https://github.com/2063ti/flugede-gadgets-store" + ansiReset)
	fmt.Println(ansiDim + "--------------------------------------------------------------" + ansiReset)
}

func isWeakSecret(secret string) bool {
	if len(secret) < 32 {
		return true
	}
	normalized := strings.ToLower(secret)
	if strings.Contains(normalized, "change-me") ||
		strings.Contains(normalized, "change-in-production") ||
		strings.Contains(normalized, "your-secret-key") {
		return true
	}
	return false
}
