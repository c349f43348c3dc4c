package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"diskwarden/internal/config"
	"diskwarden/internal/controllers"
	"diskwarden/internal/middleware"
	"diskwarden/internal/routes"
	"diskwarden/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/sirupsen/logrus"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configPath := flag.String("config", "", "path to config file")
	printToken := flag.Bool("print-token", false, "print a consumer API token and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.Fatalf("load config: %v", err)
	}

	log := newLogger(cfg)

	if cfg.AuthEnabled() || *printToken {
		services.InitAuthService(log, cfg.AuthSecretKey(), 0)
	}

	if *printToken {
		hostname, _ := os.Hostname()
		token, err := services.GenerateToken(hostname)
		if err != nil {
			log.Fatalf("generate token: %v", err)
		}
		fmt.Println(token)
		return
	}

	if info, err := host.Info(); err == nil {
		log.Infof("diskwarden %s monitoring %s (%s %s)", version, info.Hostname, info.Platform, info.PlatformVersion)
	}

	hub := services.InitStreamHub(log)
	controllers.SetStreamLogger(log)

	monitor := services.NewMonitor(cfg, log, version)
	monitor.OnUpdate(services.RecordSnapshot)
	monitor.OnUpdate(hub.BroadcastState)
	services.InitMonitor(monitor)

	ctx := context.Background()
	if err := monitor.UpdateState(ctx); err != nil {
		log.WithError(err).Warn("initial disk refresh failed")
	}
	monitor.StartCollector(ctx, cfg.PollInterval())

	if !log.IsLevelEnabled(logrus.DebugLevel) {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RateLimitMiddleware(log, middleware.NewRateLimiter()))
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigins()))

	routes.RegisterMonitorRoutes(r, cfg, log)
	routes.RegisterStreamRoutes(r, cfg)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	log.Infof("listening on %s", cfg.ListenAddr())
	if err := r.Run(cfg.ListenAddr()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()

	level, err := logrus.ParseLevel(strings.ToLower(cfg.LogLevel()))
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	if strings.EqualFold(cfg.LogFormat(), "json") {
		log.SetFormatter(&logrus.JSONFormatter{})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return log
}
