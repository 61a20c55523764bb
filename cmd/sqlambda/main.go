package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/shaunharker/SQLambda/sqlite"
	"github.com/shaunharker/SQLambda/sqlite/schema"
)

func main() {
	var (
		dbPath     = flag.String("db", "test.db", "Path to the database file, or :memory:")
		rows       = flag.Int("n", 1000000, "Number of rows to insert")
		limit      = flag.Float64("limit", 8.0, "Print rows whose data is below this value")
		configFile = flag.String("config", "", "Optional YAML connection config")
		verbose    = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	if err := run(*dbPath, *configFile, *rows, *limit, logger); err != nil {
		logger.Error("Failed", "error", err)
		os.Exit(1)
	}
}

func run(dbPath, configFile string, n int, limit float64, logger *slog.Logger) error {
	var cfg sqlite.Config
	if configFile != "" {
		var err error
		cfg, err = sqlite.LoadConfig(configFile)
		if err != nil {
			return err
		}
	}

	db, err := sqlite.Open(dbPath, sqlite.WithConfig(cfg), sqlite.WithLogger(logger))
	if err != nil {
		return err
	}
	defer db.Close()

	migrations := schema.New(db, logger)
	err = migrations.Register("test", schema.Migration{
		Version: 1,
		SQL:     "create table if not exists test (name Integer, data Real);",
	})
	if err != nil {
		return err
	}
	if err := migrations.Apply(); err != nil {
		return err
	}
	if err := db.Execute("delete from test;"); err != nil {
		return err
	}

	start := time.Now()
	if err := insertRows(db, n); err != nil {
		return err
	}
	logger.Info("Inserted rows", "count", n, "elapsed", time.Since(start).String())

	sel, err := db.Prepare("select * from test where data < ?;")
	if err != nil {
		return err
	}
	defer sel.Close()

	matched := 0
	err = sqlite.ForEach2(sel.Bind(limit), func(name int, data float64) {
		matched++
		fmt.Printf("Name: %d\t Data: %g\n", name, data)
	})
	if err != nil {
		return err
	}
	logger.Info("Selected rows", "count", matched, "limit", limit)
	return nil
}

// insertRows writes (i, sqrt(i)) for i in [0, n) in a single transaction.
func insertRows(db *sqlite.Connection, n int) error {
	ins, err := db.Prepare("insert into test (name, data) values (?, ?);")
	if err != nil {
		return err
	}
	defer ins.Close()

	return db.WithTx(func() error {
		for i := 0; i < n; i++ {
			if err := ins.Bind(i, math.Sqrt(float64(i))).Exec(); err != nil {
				return err
			}
		}
		return nil
	})
}
