package db

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migration is one idempotent schema step.
type Migration struct {
	Name string
	SQL  string
}

// Migrations lists the schema steps in execution order. Every statement is
// written to be safe to re-run on each startup.
var Migrations = []Migration{
	{
		Name: "create_jobs",
		SQL: `
			CREATE TABLE IF NOT EXISTS jobs (
				id                BIGSERIAL PRIMARY KEY,
				url               TEXT NOT NULL UNIQUE,
				job_title         TEXT NOT NULL DEFAULT '',
				employer          TEXT NOT NULL DEFAULT '',
				excerpt           TEXT NOT NULL DEFAULT '',
				content           TEXT NOT NULL DEFAULT '',
				post_date         TIMESTAMPTZ,
				expiry_date       TIMESTAMPTZ,
				type              TEXT NOT NULL DEFAULT '',
				duration          TEXT NOT NULL DEFAULT '',
				location_lat      DOUBLE PRECISION,
				location_lon      DOUBLE PRECISION,
				derived_lat       DOUBLE PRECISION,
				derived_lon       DOUBLE PRECISION,
				region            TEXT NOT NULL DEFAULT '',
				stateprov         TEXT NOT NULL DEFAULT '',
				wage_value        DOUBLE PRECISION,
				wage_unit         TEXT NOT NULL DEFAULT '',
				harmonized_wage   DOUBLE PRECISION,
				nocs_2021         TEXT[] NOT NULL DEFAULT '{}',
				major_group_2021  TEXT[] NOT NULL DEFAULT '{}',
				naics             TEXT[] NOT NULL DEFAULT '{}',
				skill_names       TEXT[] NOT NULL DEFAULT '{}',
				category          TEXT NOT NULL DEFAULT 'Other',
				sector            TEXT NOT NULL DEFAULT 'Other',
				noc_code          TEXT NOT NULL DEFAULT '',
				naics_code        TEXT NOT NULL DEFAULT '',
				created_at        TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at        TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
	{
		Name: "index_jobs_category",
		SQL:  `CREATE INDEX IF NOT EXISTS jobs_category_idx ON jobs (category)`,
	},
	{
		Name: "index_jobs_post_date",
		SQL:  `CREATE INDEX IF NOT EXISTS jobs_post_date_idx ON jobs (post_date DESC NULLS LAST)`,
	},
	{
		Name: "create_users",
		SQL: `
			CREATE TABLE IF NOT EXISTS users (
				id          BIGSERIAL PRIMARY KEY,
				full_name   TEXT NOT NULL DEFAULT '',
				email       TEXT NOT NULL UNIQUE,
				password    TEXT NOT NULL,
				created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
			)`,
	},
}

// RunMigrations applies every migration in order, stopping at the first failure.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations", "count", len(Migrations))

	for _, m := range Migrations {
		if _, err := pool.Exec(ctx, m.SQL); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		slog.Debug("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}
