package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"suito/config"
	"suito/database"
	"suito/router"
	"suito/service"
)

// @title Suito 同步服务 API
// @version 1.0
// @description Suito 现金账本局域网同步服务：按 createdAt 后写者胜合并每日记录与交易
// @host localhost:3001
// @BasePath /

var (
	configFile  string
	port        string
	showVersion bool
)

func init() {
	flag.StringVar(&configFile, "config", "", "外部配置文件路径（可选）")
	flag.StringVar(&configFile, "c", "", "外部配置文件路径（简写）")
	flag.StringVar(&port, "port", "", "监听端口，如: 3001 或 :3001")
	flag.StringVar(&port, "p", "", "监听端口（简写）")
	flag.BoolVar(&showVersion, "version", false, "显示版本信息")
	flag.BoolVar(&showVersion, "v", false, "显示版本信息（简写）")
}

func main() {
	flag.Parse()

	if showVersion {
		log.Println("Suito 同步服务 v1.0.0")
		return
	}

	// 加载配置（内置配置 + 可选的外部配置覆盖）
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	// 命令行参数覆盖端口配置
	if port != "" {
		if !strings.HasPrefix(port, ":") {
			port = ":" + port
		}
		cfg.Server.Port = port
		log.Printf("命令行指定端口: %s", port)
	}

	config.PrintConfig()
	logger := config.InitLogger(cfg.Log)

	store, err := database.OpenStore(cfg)
	if err != nil {
		logger.Fatalf("存储初始化失败: %v", err)
	}
	if js, ok := store.(*database.JSONStore); ok {
		logger.WithField("path", js.Path()).Info("使用 JSON 文件存储")
	}
	svc := service.NewLedgerService(store, logger)

	r := router.SetupRouter(cfg, svc, logger)
	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("==========================================")
		log.Printf("  Suito 同步服务已启动")
		log.Printf("==========================================")
		log.Printf("  健康检查: http://localhost%s/api/ping", cfg.Server.Port)
		log.Printf("  同步接口: http://localhost%s/api/sync", cfg.Server.Port)
		log.Printf("  Swagger:  http://localhost%s/swagger/index.html", cfg.Server.Port)
		log.Printf("==========================================")

		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("服务器启动失败: %v", err)
		}
	}()

	// 等待退出信号，给进行中的同步留出写完的时间
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithField("field", "http").Error("graceful shutdown failed: " + err.Error())
	}
	if closer, ok := store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}
	logger.Info("服务已停止")
}
