// Package main はAPIサーバーのエントリーポイントです。
package main

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/lingua-forge/internal/ai"
	"github.com/yourusername/lingua-forge/internal/config"
	"github.com/yourusername/lingua-forge/internal/jobs"
	"github.com/yourusername/lingua-forge/internal/pdf"
	"github.com/yourusername/lingua-forge/internal/template"
)

func main() {
	// 設定の読み込み
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ginのモードを設定
	gin.SetMode(cfg.GinMode)

	// Ginルーターの初期化（デフォルトミドルウェア: Logger, Recovery）
	router := gin.Default()

	// CORSミドルウェアの設定
	corsConfig := cors.DefaultConfig()
	// CORS許可オリジンを設定（カンマ区切りの文字列を配列に変換）
	origins := strings.Split(cfg.CORSAllowedOrigins, ",")
	corsConfig.AllowOrigins = origins
	corsConfig.AllowHeaders = []string{
		"Origin",
		"Content-Type",
		"Accept",
	}
	router.Use(cors.New(corsConfig))

	// 各マネージャーの初期化
	fonts, err := template.NewFontRegistry(cfg.FontsDir)
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}
	templates := template.NewManager(fonts, cfg.MinFontSize, cfg.MaxFontSize)
	renderer := pdf.NewService(cfg.ArtifactDir)
	generator, err := ai.NewManager(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatalf("Failed to create AI manager: %v", err)
	}
	manager := jobs.NewManager(templates, generator, renderer, log.Default())

	// ルーティングの設定
	setupRoutes(router, manager, templates)

	// サーバーの起動
	addr := ":" + cfg.Port
	log.Printf("Starting API server on %s (mode: %s)", addr, cfg.GinMode)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// handleHealth はヘルスチェックエンドポイントのハンドラーです。
func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "lingua-forge-api",
		"version": "0.1.0",
	})
}

// setupRoutes はAPIの配線を行います。
func setupRoutes(router *gin.Engine, manager *jobs.Manager, templates *template.Manager) {
	router.GET("/health", handleHealth)

	pdfRoutes := router.Group("/pdf")
	{
		pdfRoutes.POST("", jobs.CreateHandler(manager))
		pdfRoutes.GET("", jobs.ListHandler(manager))
		pdfRoutes.GET("/:id", jobs.GetHandler(manager))
		pdfRoutes.GET("/:id/download", jobs.DownloadHandler(manager))
		pdfRoutes.DELETE("/:id", jobs.DeleteHandler(manager))
	}

	templateRoutes := router.Group("/template")
	{
		templateRoutes.POST("", template.CreateHandler(templates))
		templateRoutes.GET("", template.ListHandler(templates))
		templateRoutes.GET("/:id", template.GetHandler(templates))
		templateRoutes.DELETE("/:id", template.DeleteHandler(templates))
	}
}
