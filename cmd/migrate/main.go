package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/backoffice/internal/app"
	"github.com/vladislavdragonenkov/backoffice/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second

	envPostgresDSN = "BACKOFFICE_POSTGRES_DSN"
	envSecretsFile = "BACKOFFICE_SECRETS_FILE"
)

func main() {
	var (
		direction string
		steps     int
		dsn       string
	)

	flag.StringVar(&direction, "direction", "up", "migration direction: up|down|status")
	flag.IntVar(&steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: "+envPostgresDSN+" or "+envSecretsFile+")")
	flag.Parse()

	dsn, err := resolveDSN(dsn, os.Getenv)
	if err != nil {
		fail("%v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		fail("open postgres store: %v", err)
	}
	defer store.Close()

	switch strings.ToLower(strings.TrimSpace(direction)) {
	case "up":
		if err := store.MigrateUp(ctx, steps); err != nil {
			fail("migrate up failed: %v", err)
		}
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			fail("migration status failed: %v", err)
		}
		fmt.Printf("migrate up ok: version=%d applied=%d\n", version, count)
	case "down":
		if steps <= 0 {
			steps = 1
		}
		if err := store.MigrateDown(ctx, steps); err != nil {
			fail("migrate down failed: %v", err)
		}
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			fail("migration status failed: %v", err)
		}
		fmt.Printf("migrate down ok: version=%d applied=%d\n", version, count)
	case "status":
		if err := printStatus(ctx, os.Stdout, store); err != nil {
			fail("migration status failed: %v", err)
		}
	default:
		fail("unsupported direction: %s (use up|down|status)", direction)
	}
}

// resolveDSN: флаг, затем переменная окружения, затем файл секретов.
func resolveDSN(flagValue string, getenv func(string) string) (string, error) {
	if dsn := strings.TrimSpace(flagValue); dsn != "" {
		return dsn, nil
	}
	if dsn := strings.TrimSpace(getenv(envPostgresDSN)); dsn != "" {
		return dsn, nil
	}
	if path := strings.TrimSpace(getenv(envSecretsFile)); path != "" {
		secrets, err := app.LoadSecrets(path)
		if err != nil {
			return "", err
		}
		return secrets.Database.DSN()
	}
	return "", fmt.Errorf("%s, %s or -dsn is required", envPostgresDSN, envSecretsFile)
}

type migrationLister interface {
	AppliedMigrations(ctx context.Context) ([]postgres.AppliedMigration, error)
	PendingMigrations(ctx context.Context) ([]string, error)
}

func printStatus(ctx context.Context, w io.Writer, store migrationLister) error {
	applied, err := store.AppliedMigrations(ctx)
	if err != nil {
		return err
	}
	pending, err := store.PendingMigrations(ctx)
	if err != nil {
		return err
	}

	var version int64
	if len(applied) > 0 {
		version = applied[len(applied)-1].Version
	}
	fmt.Fprintf(w, "migration status: version=%d applied=%d pending=%d\n", version, len(applied), len(pending))
	for _, m := range applied {
		fmt.Fprintf(w, "  applied %04d_%s at %s\n", m.Version, m.Name, m.AppliedAt.UTC().Format(time.RFC3339))
	}
	for _, name := range pending {
		fmt.Fprintf(w, "  pending %s\n", name)
	}
	return nil
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
