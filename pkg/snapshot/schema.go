package snapshot

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA temp_store = MEMORY;

-- Pair content snapshots: last known-good content per service x location
-- pair, written back on every successful live fetch and read by stage 2 of
-- the fallback chain.
CREATE TABLE IF NOT EXISTS snapshots (
    pair_key TEXT PRIMARY KEY,        -- "{service}--{location}"
    service_slug TEXT NOT NULL,
    location_slug TEXT NOT NULL,
    payload TEXT NOT NULL,            -- JSON-encoded pair content
    payload_hash TEXT NOT NULL,
    run_id TEXT,                      -- generation run that wrote it
    updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_snapshots_service ON snapshots(service_slug);
CREATE INDEX IF NOT EXISTS idx_snapshots_location ON snapshots(location_slug);
`
