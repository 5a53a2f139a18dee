package zoom

// createSchemaSQL is the DDL for the zoom_preferences table.
const createSchemaSQL = `CREATE TABLE IF NOT EXISTS zoom_preferences (
    profile     TEXT PRIMARY KEY,
    level       INTEGER NOT NULL CHECK (level > 0),
    updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
