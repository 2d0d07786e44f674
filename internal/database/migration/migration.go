package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"
)

// Flag-free logger so migration entries stay single-line JSON without
// touching global logger state.
var logger = log.New(os.Stdout, "", 0)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_tenants",
		SQL: `CREATE TABLE IF NOT EXISTS tenants (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  name       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id     UUID        NOT NULL REFERENCES tenants (id),
  email         TEXT        NOT NULL UNIQUE,
  display_name  TEXT        NOT NULL DEFAULT '',
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_products",
		SQL: `CREATE TABLE IF NOT EXISTS products (
  id               UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id        UUID        NOT NULL REFERENCES tenants (id),
  name             TEXT        NOT NULL,
  barcode          TEXT        NOT NULL DEFAULT '',
  brand            TEXT        NOT NULL DEFAULT '',
  category         TEXT        NOT NULL DEFAULT '',
  quantity_unit    TEXT        NOT NULL DEFAULT '',
  energy_kcal      DOUBLE PRECISION NOT NULL DEFAULT 0,
  image_url        TEXT        NOT NULL DEFAULT '',
  default_location TEXT        NOT NULL DEFAULT '',
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// Partial so manually added products without a barcode never collide.
		Name: "create_unique_index_products_tenant_barcode",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_products_tenant_barcode ON products (tenant_id, barcode) WHERE barcode <> '';`,
	},
	{
		Name: "create_index_products_tenant_name",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_products_tenant_name ON products (tenant_id, name);`,
	},
	{
		Name: "create_table_stock_entries",
		SQL: `CREATE TABLE IF NOT EXISTS stock_entries (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id   UUID        NOT NULL REFERENCES tenants (id),
  product_id  UUID        NOT NULL REFERENCES products (id) ON DELETE CASCADE,
  amount      DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
  expiry_date DATE,
  location    TEXT        NOT NULL DEFAULT '',
  opened      BOOLEAN     NOT NULL DEFAULT false,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_stock_entries_fefo",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_stock_entries_fefo ON stock_entries (tenant_id, product_id, expiry_date ASC NULLS LAST);`,
	},
	{
		Name: "create_table_shopping_lists",
		SQL: `CREATE TABLE IF NOT EXISTS shopping_lists (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id  UUID        NOT NULL REFERENCES tenants (id),
  name       TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_shopping_list_items",
		SQL: `CREATE TABLE IF NOT EXISTS shopping_list_items (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id  UUID        NOT NULL REFERENCES tenants (id),
  list_id    UUID        NOT NULL REFERENCES shopping_lists (id) ON DELETE CASCADE,
  product_id UUID        REFERENCES products (id),
  name       TEXT        NOT NULL,
  amount     DOUBLE PRECISION NOT NULL DEFAULT 1,
  done       BOOLEAN     NOT NULL DEFAULT false,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_shopping_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS shopping_sessions (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id    UUID        NOT NULL REFERENCES tenants (id),
  list_id      UUID        NOT NULL REFERENCES shopping_lists (id) ON DELETE CASCADE,
  device_id    TEXT        NOT NULL,
  cached_items JSONB       NOT NULL DEFAULT '[]',
  started_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  last_sync_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_offline_operations",
		SQL: `CREATE TABLE IF NOT EXISTS offline_operations (
  session_id UUID        NOT NULL REFERENCES shopping_sessions (id) ON DELETE CASCADE,
  seq        BIGINT      NOT NULL,
  op_type    TEXT        NOT NULL,
  payload    JSONB       NOT NULL,
  applied_at TIMESTAMPTZ,
  PRIMARY KEY (session_id, seq)
);`,
	},
	{
		Name: "create_table_transfer_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS transfer_sessions (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id   UUID        NOT NULL REFERENCES tenants (id),
  state       TEXT        NOT NULL DEFAULT 'created',
  total_items INT         NOT NULL DEFAULT 0,
  succeeded   INT         NOT NULL DEFAULT 0,
  failed      INT         NOT NULL DEFAULT 0,
  created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  finished_at TIMESTAMPTZ
);`,
	},
	{
		Name: "create_table_transfer_item_logs",
		SQL: `CREATE TABLE IF NOT EXISTS transfer_item_logs (
  id          UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  session_id  UUID        NOT NULL REFERENCES transfer_sessions (id) ON DELETE CASCADE,
  entity_type TEXT        NOT NULL,
  entity_id   UUID        NOT NULL,
  status      TEXT        NOT NULL DEFAULT 'pending',
  attempts    INT         NOT NULL DEFAULT 0,
  last_error  TEXT        NOT NULL DEFAULT '',
  updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (session_id, entity_type, entity_id)
);`,
	},
	{
		Name: "create_table_attachments",
		SQL: `CREATE TABLE IF NOT EXISTS attachments (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  tenant_id    UUID        NOT NULL REFERENCES tenants (id),
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
}

// EnsureMigrated checks if the 'products' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.products') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		logger.Printf("failed to marshal migration log: %v", err)
		return
	}
	logger.Println(string(b))
}
