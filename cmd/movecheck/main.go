package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/sc68cal/megamek-sub000/internal/config"
	"github.com/sc68cal/megamek-sub000/internal/db"
	"github.com/sc68cal/megamek-sub000/internal/game"
	"github.com/sc68cal/megamek-sub000/internal/hexgrid"
	"github.com/sc68cal/megamek-sub000/internal/ingestion"
	"github.com/sc68cal/megamek-sub000/internal/movecheck"
	"github.com/sc68cal/megamek-sub000/internal/movepath"
	"github.com/sc68cal/megamek-sub000/internal/unit"
)

type options struct {
	board    string
	scenario string
	mtf      string
	profiles string
	pg       string
	record   string
	history  int
	seed     uint64
	asJSON   bool
}

func main() {
	dbs, err := config.LoadDatabases()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	var o options
	flag.StringVar(&o.board, "board", "", "MegaMek .board file")
	flag.StringVar(&o.scenario, "scenario", "", "Scenario JSON with unit and steps")
	flag.StringVar(&o.mtf, "mtf", "", "Take the unit from this .mtf file")
	flag.StringVar(&o.profiles, "profiles", dbs.ProfilePath, "SQLite profile database")
	flag.StringVar(&o.pg, "pg", dbs.DatabaseURL, "Postgres profile store (used when -profiles is empty)")
	flag.StringVar(&o.record, "record", dbs.CheckLog, "Append the result to this SQLite check log")
	flag.IntVar(&o.history, "history", 0, "After recording, list this many recent checks for the unit")
	flag.Uint64Var(&o.seed, "seed", 0, "Random seed for out-of-control flight (0 disables the random turn)")
	flag.BoolVar(&o.asJSON, "json", false, "Print JSON instead of text")
	flag.Parse()

	if o.board == "" || o.scenario == "" {
		flag.Usage()
		os.Exit(2)
	}
	if err := run(context.Background(), o, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

// result is the JSON output.
type result struct {
	Unit     string               `json:"unit"`
	Path     []movepath.Step      `json:"path"`
	Entries  []movecheck.Entry    `json:"entries"`
	Thrust   []movecheck.Entry    `json:"thrust,omitempty"`
	Launches []movecheck.DoorLoad `json:"launches,omitempty"`
	History  []db.CheckRecord     `json:"history,omitempty"`
}

func run(ctx context.Context, o options, out io.Writer) error {
	rules, err := game.LoadRules()
	if err != nil {
		return err
	}
	env, err := game.LoadEnvironment()
	if err != nil {
		return err
	}

	board, err := hexgrid.LoadBoard(o.board)
	if err != nil {
		return err
	}
	log.Printf("Loaded board %s (%dx%d)", filepath.Base(o.board), board.Width, board.Height)

	sc, err := loadScenario(o.scenario)
	if err != nil {
		return err
	}
	if sc.Environment != nil {
		env = *sc.Environment
	}
	if sc.Rules != nil {
		rules = *sc.Rules
	}

	e, err := resolveUnit(ctx, o, sc)
	if err != nil {
		return err
	}
	log.Printf("Checking %s at %s with %d steps", e.Name, e.Position, len(sc.Steps))

	p := sc.build(movepath.NewCompiler(board, env, rules), e)
	if e.IsAero() {
		var opts []movecheck.Option
		if o.seed != 0 {
			opts = append(opts, movecheck.WithRand(rand.New(rand.NewPCG(o.seed, o.seed))))
		}
		p = movecheck.NewSynthesizer(board, env, rules, opts...).MoveAero(p)
	}

	ev := movecheck.NewEvaluator(board, env, rules)
	rep := ev.Evaluate(p)
	var thrust movecheck.Report
	if e.IsAirborne() {
		thrust = ev.CheckThrust(p)
	}

	var history []db.CheckRecord
	if o.record != "" {
		history, err = record(ctx, o.record, o.history, e.Name, filepath.Base(o.board), rep)
		if err != nil {
			return err
		}
	}

	if o.asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result{
			Unit:     e.Name,
			Path:     rep.Path.Steps(),
			Entries:  rep.Entries,
			Thrust:   thrust.Entries,
			Launches: rep.Launches,
			History:  history,
		})
	}

	if n := rep.Path.Len(); n < len(sc.Steps) && !e.IsAero() {
		fmt.Fprintf(out, "Path is only legal for %d of %d steps\n", n, len(sc.Steps))
	}
	for _, r := range []movecheck.Report{rep, thrust} {
		if !r.Empty() {
			fmt.Fprintln(out, r.String())
		}
	}
	for _, l := range rep.Launches {
		fmt.Fprintf(out, "Bay %d door %d launches %d units (+%d)\n", l.Bay, l.Door, l.Units, l.Bonus)
	}
	if rep.Empty() && thrust.Empty() {
		fmt.Fprintln(out, "No piloting skill checks needed")
	}
	if len(history) > 0 {
		fmt.Fprintf(out, "Last %d checks for %s:\n", len(history), e.Name)
		for _, h := range history {
			fmt.Fprintf(out, "  %s  %-20s %2d steps  %d findings\n",
				h.CreatedAt.Format(time.DateTime), h.Board, h.Steps, len(h.Entries))
		}
	}
	return nil
}

func resolveUnit(ctx context.Context, o options, sc *scenario) (*unit.Entity, error) {
	if sc.Unit != nil {
		return sc.Unit, nil
	}
	var prof *ingestion.Profile
	switch {
	case o.mtf != "":
		p, err := ingestion.ParseMTF(o.mtf)
		if err != nil {
			return nil, err
		}
		prof = p
	case sc.Profile != "":
		store, closeStore, err := openProfiles(ctx, o)
		if err != nil {
			return nil, err
		}
		defer closeStore()
		p, err := store.Profile(ctx, sc.Profile)
		if err != nil {
			return nil, err
		}
		prof = p
	default:
		return nil, errors.New("scenario names no unit: set \"unit\", \"profile\" or -mtf")
	}
	e := prof.Entity(1, sc.Piloting)
	sc.place(e)
	return e, nil
}

func openProfiles(ctx context.Context, o options) (db.Profiles, func(), error) {
	switch {
	case o.profiles != "":
		sl, err := db.ConnectSQLite(o.profiles)
		if err != nil {
			return nil, nil, err
		}
		return &db.SQLiteProfiles{DB: sl}, func() { sl.Close() }, nil
	case o.pg != "":
		pg, err := db.Connect(ctx, o.pg)
		if err != nil {
			return nil, nil, err
		}
		return pg, pg.Close, nil
	}
	return nil, nil, errors.New("no profile store: set -profiles or -pg")
}

// record logs rep and returns the unit's latest history records, this one
// included.
func record(ctx context.Context, path string, history int, unitName, board string, rep movecheck.Report) ([]db.CheckRecord, error) {
	sl, err := db.ConnectProfileDB(path)
	if err != nil {
		return nil, err
	}
	defer sl.Close()
	checks := &db.CheckLog{DB: sl}
	id, err := checks.Record(ctx, unitName, board, rep)
	if err != nil {
		return nil, err
	}
	log.Printf("Recorded check %s", id)
	if history <= 0 {
		return nil, nil
	}
	return checks.Recent(ctx, unitName, history)
}
