package postgres

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id          TEXT PRIMARY KEY,
	name        VARCHAR(100) NOT NULL,
	email       VARCHAR(255) NOT NULL UNIQUE,
	password    TEXT,
	phone       VARCHAR(20) UNIQUE,
	is_verified BOOLEAN NOT NULL DEFAULT FALSE,
	google_id   TEXT UNIQUE,
	apple_id    TEXT UNIQUE,
	picture     TEXT,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at  TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS categories (
	id          TEXT PRIMARY KEY,
	name        VARCHAR(100) NOT NULL UNIQUE,
	description VARCHAR(255),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
	deleted_at  TIMESTAMPTZ
);
`

// Bootstrap creates the tables if they don't already exist. Safe to call on
// every startup.
func Bootstrap(ctx context.Context, db DB) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to bootstrap schema: %w", err)
	}
	return nil
}
