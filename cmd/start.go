/*
Copyright © 2025 projeto-bia
*/
package cmd

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/projeto-bia/bia-be/config"
	"github.com/projeto-bia/bia-be/database"
	"github.com/projeto-bia/bia-be/handler"
	"github.com/projeto-bia/bia-be/service"
)

// startServerCmd represents the start command
var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the support chat server",
	Long:  `Builds or loads the document index and starts the HTTP chat server`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		// Initialize services
		pdfService := service.NewPDFService(service.DefaultDocumentServiceConfig)
		embedder := service.NewOpenAIEmbedder(cfg.EmbeddingEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel)

		store, err := newVectorStore(cfg)
		if err != nil {
			log.Fatalf("Failed to open vector store: %v", err)
		}

		indexService := service.NewIndexService(store, embedder, pdfService, cfg.DocumentDir)
		if err := indexService.EnsureReady(ctx); err != nil {
			log.Fatalf("Failed to prepare document index: %v", err)
		}

		catalogue := service.LoadCatalogue(cfg.RoomsPath)

		// A failed session stays disabled for the process lifetime and every
		// send degrades to a fixed message; startup continues regardless.
		session := service.NewGeminiChat(ctx, cfg.GeminiAPIKey, cfg.Model, service.SystemInstruction)

		chatService := service.NewChatService(indexService, session, catalogue)
		fileService := service.NewFileService(cfg.UploadDir, indexService)
		wsService := service.NewWebSocketService(chatService)

		// Initialize handlers
		corsHandler := handler.NewCorsHandler()
		chatHandler := handler.NewChatHandler(chatService)
		searchHandler := handler.NewSearchHandler(indexService)
		uploadHandler := handler.NewUploadHandler(fileService)

		// Setup Gin router
		router := gin.Default()
		router.Use(corsHandler.CorsMiddleware)

		router.POST("/chat", chatHandler.HandleChat)
		router.POST("/chat/stream", chatHandler.HandleChatStream)
		router.GET("/ws", func(c *gin.Context) {
			wsService.HandleChat(c.Writer, c.Request)
		})
		router.GET("/documents/search", searchHandler.HandleSearch)

		adminRoutes := router.Group("/admin/api/v1")
		{
			adminRoutes.POST("/upload", uploadHandler.UploadDocumentHandler)
		}

		if cfg.StaticDir != "" {
			router.Static("/static", cfg.StaticDir)
			router.StaticFile("/", cfg.StaticDir+"/index.html")
		}

		log.Printf("Starting server on port %s...\n", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Server error:", err)
		}
	},
}

func newVectorStore(cfg *config.Config) (database.VectorStore, error) {
	if cfg.VectorStore == "weaviate" {
		return database.NewWeaviateStore(cfg.WeaviateStoreConfig)
	}
	return database.NewLocalStore(cfg.IndexPath)
}

func init() {
	rootCmd.AddCommand(startServerCmd)
}
