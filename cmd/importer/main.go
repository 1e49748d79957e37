package main

import (
	"context"
	"log"
	"os"

	"blandselv-backend/internal/config"
	"blandselv-backend/internal/db"
	"blandselv-backend/internal/importer"
	catalogrepo "blandselv-backend/internal/repository/catalog"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[importer] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	if len(os.Args) < 2 {
		logger.Fatalf("usage: importer <drinks.csv>")
	}

	file, err := os.Open(os.Args[1])
	if err != nil {
		logger.Fatalf("open csv: %v", err)
	}
	defer file.Close()

	ctx := context.Background()
	pool, err := db.Connect(ctx, cfg.DBConnString)
	if err != nil {
		logger.Fatalf("connect db: %v", err)
	}
	defer pool.Close()

	repo := catalogrepo.NewPostgres(pool)
	imp := importer.NewCSVImporter(file, repo)

	count, err := imp.Run(ctx)
	if err != nil {
		logger.Fatalf("import: %v", err)
	}
	logger.Printf("imported %d drinks", count)
}
