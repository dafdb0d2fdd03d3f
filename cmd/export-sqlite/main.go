package main

import (
	"context"
	"log"
	"os"

	"github.com/sc68cal/megamek-sub000/internal/config"
	"github.com/sc68cal/megamek-sub000/internal/db"
	"github.com/sc68cal/megamek-sub000/internal/ingestion"
)

// export-sqlite copies every profile from Postgres into a fresh SQLite
// profile database for offline move checks.
func main() {
	ctx := context.Background()

	dbs, err := config.LoadDatabases()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if dbs.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}
	pg, err := db.Connect(ctx, dbs.DatabaseURL)
	if err != nil {
		log.Fatalf("pg connect: %v", err)
	}
	defer pg.Close()

	outPath := "profiles.db"
	if len(os.Args) > 1 {
		outPath = os.Args[1]
	}
	os.Remove(outPath)
	sl, err := db.ConnectProfileDB(outPath)
	if err != nil {
		log.Fatalf("sqlite open: %v", err)
	}
	defer sl.Close()

	profiles := &db.SQLiteProfiles{DB: sl}
	count := 0
	err = pg.EachProfile(ctx, func(p *ingestion.Profile) error {
		if err := profiles.UpsertProfile(ctx, p); err != nil {
			return err
		}
		count++
		if count%500 == 0 {
			log.Printf("  %d profiles", count)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("export: %v", err)
	}
	log.Printf("Exported %d profiles to %s", count, outPath)
}
