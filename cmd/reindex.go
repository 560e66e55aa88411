/*
Copyright © 2025 projeto-bia
*/
package cmd

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/projeto-bia/bia-be/config"
	"github.com/projeto-bia/bia-be/database"
	"github.com/projeto-bia/bia-be/service"
	"github.com/projeto-bia/bia-be/utils"
)

// reindexCmd represents the reindex command
var reindexCmd = &cobra.Command{
	Use:   "reindex",
	Short: "Rebuild the document index from the document folder",
	Long: `Discards the persisted document index and rebuilds it by re-reading,
re-chunking and re-embedding every PDF in the document folder.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		cfg, err := config.LoadConfig(cfgFile)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}

		var store database.VectorStore
		if cfg.VectorStore == "weaviate" {
			weaviateStore, err := database.NewWeaviateStore(cfg.WeaviateStoreConfig)
			if err != nil {
				log.Fatalf("Failed to connect to Weaviate: %v", err)
			}
			if err := weaviateStore.ReInit(); err != nil {
				log.Fatalf("Failed to reset Weaviate index: %v", err)
			}
			store = weaviateStore
		} else {
			if utils.FileExists(cfg.IndexPath) {
				if err := os.Remove(cfg.IndexPath); err != nil {
					log.Fatalf("Failed to remove index artifact: %v", err)
				}
			}
			localStore, err := database.NewLocalStore(cfg.IndexPath)
			if err != nil {
				log.Fatalf("Failed to open local store: %v", err)
			}
			store = localStore
		}

		pdfService := service.NewPDFService(service.DefaultDocumentServiceConfig)
		embedder := service.NewOpenAIEmbedder(cfg.EmbeddingEndpoint, cfg.OpenAIAPIKey, cfg.EmbeddingModel)
		indexService := service.NewIndexService(store, embedder, pdfService, cfg.DocumentDir)

		if err := indexService.Build(ctx); err != nil {
			log.Fatalf("Failed to rebuild index: %v", err)
		}
		log.Println("Reindex complete")
	},
}

func init() {
	rootCmd.AddCommand(reindexCmd)
}
