package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/sc68cal/megamek-sub000/internal/config"
	"github.com/sc68cal/megamek-sub000/internal/db"
	"github.com/sc68cal/megamek-sub000/internal/ingestion"
)

func main() {
	dbs, err := config.LoadDatabases()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	dir := flag.String("dir", ".", "Path to mekfiles directory")
	sqlitePath := flag.String("sqlite", dbs.ProfilePath, "SQLite profile database to write")
	dsn := flag.String("pg", dbs.DatabaseURL, "Postgres connection string (used when -sqlite is empty)")
	dryRun := flag.Bool("dry-run", false, "Parse only, do not store profiles")
	verbose := flag.Bool("verbose", false, "Print each parsed mech")
	flag.Parse()

	var files []string
	err = filepath.Walk(*dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if !info.IsDir() && strings.HasSuffix(strings.ToLower(info.Name()), ".mtf") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("walk %s: %v", *dir, err)
	}
	log.Printf("Found %d .mtf files", len(files))

	ctx := context.Background()
	var store db.Profiles
	if !*dryRun {
		switch {
		case *sqlitePath != "":
			sl, err := db.ConnectProfileDB(*sqlitePath)
			if err != nil {
				log.Fatalf("profile db: %v", err)
			}
			defer sl.Close()
			store = &db.SQLiteProfiles{DB: sl}
			log.Printf("Writing profiles to %s", *sqlitePath)
		case *dsn != "":
			pg, err := db.Connect(ctx, *dsn)
			if err != nil {
				log.Fatalf("postgres: %v", err)
			}
			defer pg.Close()
			if err := pg.Migrate(ctx); err != nil {
				log.Fatalf("postgres: %v", err)
			}
			store = pg
			log.Println("Connected to database")
		default:
			log.Fatal("no profile store: set -sqlite or -pg, or use -dry-run")
		}
	}

	var parsed, failed, stored int
	var errs []string

	for i, f := range files {
		p, err := ingestion.ParseMTF(f)
		if err != nil {
			failed++
			errs = append(errs, fmt.Sprintf("  %s: %v", filepath.Base(f), err))
			continue
		}
		parsed++

		if *verbose {
			fmt.Printf("  %-40s %3dt  %d/%d/%d\n", p.FullName(), p.Mass, p.WalkMP, p.RunMP(), p.JumpMP)
		}

		if store != nil {
			if err := store.UpsertProfile(ctx, p); err != nil {
				failed++
				errs = append(errs, fmt.Sprintf("  %s: %v", filepath.Base(f), err))
				continue
			}
			stored++
		}

		if (i+1)%500 == 0 {
			log.Printf("Progress: %d / %d files processed", i+1, len(files))
		}
	}

	fmt.Printf("\nResults:\n")
	if len(files) > 0 {
		fmt.Printf("  Parsed:   %d / %d (%.1f%%)\n", parsed, len(files), float64(parsed)/float64(len(files))*100)
	}
	fmt.Printf("  Failed:   %d\n", failed)
	if store != nil {
		fmt.Printf("  Stored:   %d profiles\n", stored)
	}

	if len(errs) > 0 {
		fmt.Printf("\nFirst %d errors:\n", min(len(errs), 20))
		for i, e := range errs {
			if i >= 20 {
				break
			}
			fmt.Println(e)
		}
	}
}
