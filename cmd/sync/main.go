package main

import (
	"context"
	"fmt"
	"log"

	"notion-mirror/internal/config"
	"notion-mirror/internal/database"
	"notion-mirror/internal/features/schema"
	sync_feature "notion-mirror/internal/features/sync"
	"notion-mirror/internal/logger"
	"notion-mirror/internal/notion"
)

// One-shot runner: drives sync cycles for the configured database until no
// pages remain, then prints the totals and the final watermark.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.NewLogger(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer zapLogger.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer db.DB.Close()

	client := notion.NewClient(cfg)
	converter := notion.NewMarkdownConverter(client)
	schemaService := schema.NewSchemaService(cfg, client, db, zapLogger)
	writer := sync_feature.NewUpsertWriter(db)
	syncService := sync_feature.NewSyncService(cfg, schemaService, client, converter, writer, zapLogger)

	ctx := context.Background()

	var carried *sync_feature.State
	totalProcessed := 0
	totalErrors := 0

	for {
		result, err := syncService.RunCycle(ctx, carried)
		if err != nil {
			log.Fatalf("sync cycle failed: %v", err)
		}

		totalProcessed += result.Processed
		totalErrors += result.Errors
		for _, msg := range result.ErrorMessages {
			fmt.Println("  !", msg)
		}

		if !result.HasMore {
			if result.NextState != nil && result.NextState.LastSyncTime != nil {
				fmt.Printf("Synced up to %s\n", result.NextState.LastSyncTime.Format("2006-01-02 15:04:05"))
			}
			break
		}
		carried = result.NextState
	}

	fmt.Printf("Processed %d records (%d errors)\n", totalProcessed, totalErrors)
}
