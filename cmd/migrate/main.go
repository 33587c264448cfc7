package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type migrationFile struct {
	version int
	name    string
	path    string
	kind    string // up or down
}

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "migrations", "directory holding NNN_name.up.sql / NNN_name.down.sql files")
	steps := flag.Int("steps", 0, "for down: how many migrations to revert (0 reverts all)")
	flag.Parse()

	_ = godotenv.Load()
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		log.Fatalf("failed to ping database: %v", err)
	}
	if err := ensureSchemaMigrations(ctx, db); err != nil {
		log.Fatalf("failed to ensure schema_migrations: %v", err)
	}

	files, err := loadMigrationFiles(*dir)
	if err != nil {
		log.Fatalf("failed to load migrations: %v", err)
	}

	switch strings.ToLower(*mode) {
	case "up":
		n, err := applyUp(ctx, db, files)
		if err != nil {
			log.Fatalf("migration up failed: %v", err)
		}
		log.Printf("Migration up completed, %d applied", n)
	case "down":
		n, err := applyDown(ctx, db, files, *steps)
		if err != nil {
			log.Fatalf("migration down failed: %v", err)
		}
		log.Printf("Migration down completed, %d reverted", n)
	case "status":
		if err := printStatus(ctx, db, files); err != nil {
			log.Fatalf("migration status failed: %v", err)
		}
	default:
		log.Fatalf("unknown mode: %s", *mode)
	}
}

func ensureSchemaMigrations(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name TEXT NOT NULL,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	return err
}

// loadMigrationFiles lists the .sql files in dir sorted by version. Files
// without a numeric prefix are skipped.
func loadMigrationFiles(dir string) ([]migrationFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []migrationFile
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		lower := strings.ToLower(name)
		if !strings.HasSuffix(lower, ".sql") {
			continue
		}

		kind := "up"
		if strings.HasSuffix(lower, ".down.sql") {
			kind = "down"
		}

		ver, migName, err := parseVersionAndName(name)
		if err != nil {
			log.Printf("skip migration without version prefix: %s", name)
			continue
		}

		files = append(files, migrationFile{
			version: ver,
			name:    migName,
			path:    filepath.Join(dir, name),
			kind:    kind,
		})
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].version < files[j].version })
	return files, nil
}

// parseVersionAndName splits 001_create_users.up.sql into 1 and create_users.
func parseVersionAndName(filename string) (int, string, error) {
	parts := strings.SplitN(filename, "_", 2)
	if len(parts) < 2 || parts[0] == "" {
		return 0, "", errors.New("invalid filename")
	}
	ver, err := strconv.Atoi(parts[0])
	if err != nil || ver < 0 {
		return 0, "", errors.New("invalid version")
	}

	name := parts[1]
	for _, suffix := range []string{".up.sql", ".down.sql", ".sql"} {
		if strings.HasSuffix(strings.ToLower(name), suffix) {
			name = name[:len(name)-len(suffix)]
			break
		}
	}
	return ver, name, nil
}

func appliedVersions(ctx context.Context, db *sql.DB) (map[int]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	applied := map[int]bool{}
	for rows.Next() {
		var v int
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		applied[v] = true
	}
	return applied, rows.Err()
}

// applyUp runs every pending up migration, each in its own transaction
// together with its schema_migrations row.
func applyUp(ctx context.Context, db *sql.DB, files []migrationFile) (int, error) {
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, f := range files {
		if f.kind != "up" || applied[f.version] {
			continue
		}
		log.Printf("Applying up %03d: %s", f.version, f.name)
		err := runInTx(ctx, db, f.path, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations(version, name) VALUES($1, $2)", f.version, f.name)
			return err
		})
		if err != nil {
			return count, fmt.Errorf("failed applying %s: %w", f.path, err)
		}
		count++
	}
	return count, nil
}

// applyDown reverts applied migrations newest first. steps <= 0 reverts all.
func applyDown(ctx context.Context, db *sql.DB, files []migrationFile, steps int) (int, error) {
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return 0, err
	}

	var downs []migrationFile
	for _, f := range files {
		if f.kind == "down" && applied[f.version] {
			downs = append(downs, f)
		}
	}
	sort.SliceStable(downs, func(i, j int) bool { return downs[i].version > downs[j].version })
	if steps > 0 && steps < len(downs) {
		downs = downs[:steps]
	}

	count := 0
	for _, f := range downs {
		log.Printf("Reverting down %03d: %s", f.version, f.name)
		err := runInTx(ctx, db, f.path, func(tx *sql.Tx) error {
			_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version=$1", f.version)
			return err
		})
		if err != nil {
			return count, fmt.Errorf("failed reverting %s: %w", f.path, err)
		}
		count++
	}
	return count, nil
}

func printStatus(ctx context.Context, db *sql.DB, files []migrationFile) error {
	applied, err := appliedVersions(ctx, db)
	if err != nil {
		return err
	}
	for _, f := range files {
		if f.kind != "up" {
			continue
		}
		state := "pending"
		if applied[f.version] {
			state = "applied"
		}
		fmt.Printf("%03d %-40s %s\n", f.version, f.name, state)
	}
	return nil
}

func runInTx(ctx context.Context, db *sql.DB, path string, record func(*sql.Tx) error) error {
	body, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, string(body)); err != nil {
		tx.Rollback()
		return err
	}
	if err := record(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}
