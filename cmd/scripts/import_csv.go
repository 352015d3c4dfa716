package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prizeroom/doorprize-backend/internal/config"
	"github.com/prizeroom/doorprize-backend/internal/repositories/mongodb"
	"github.com/prizeroom/doorprize-backend/internal/services"
	mongoclient "github.com/prizeroom/doorprize-backend/pkg/mongodb"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Imports contestants from a CSV file into an existing session.
//
// Usage: import_csv <session-id> <csv-file>
func main() {
	if len(os.Args) != 3 {
		fmt.Fprintf(os.Stderr, "usage: %s <session-id> <csv-file>\n", os.Args[0])
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	sessionID, err := primitive.ObjectIDFromHex(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid session id %q: %v\n", os.Args[1], err)
		os.Exit(2)
	}

	f, err := os.Open(os.Args[2])
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open csv file: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	client, err := mongoclient.NewClient(cfg.MongoDB.URI)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to connect to MongoDB: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = client.Disconnect(ctx)
	}()

	db := client.Database(cfg.MongoDB.Database)
	sessionRepo := mongodb.NewSessionRepository(db)
	contestantRepo := mongodb.NewContestantRepository(db)
	contestantService := services.NewContestantService(sessionRepo, contestantRepo)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	result, err := contestantService.ImportCSV(ctx, sessionID, f)
	if err != nil {
		fmt.Fprintf(os.Stderr, "import failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Imported %d of %d rows (%d skipped)\n", result.Created, result.TotalRows, result.Skipped)
	for _, rowErr := range result.Errors {
		fmt.Printf("  %s\n", rowErr)
	}
}
