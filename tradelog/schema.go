package tradelog

const Schema = `
CREATE TABLE IF NOT EXISTS trades (
	key TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	day TEXT NOT NULL,
	action TEXT NOT NULL,
	quantity REAL NOT NULL,
	price REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_symbol ON trades(symbol);

CREATE TABLE IF NOT EXISTS ingest_runs (
	run_id TEXT PRIMARY KEY,
	symbol TEXT NOT NULL,
	source TEXT NOT NULL,
	points INTEGER NOT NULL,
	skipped INTEGER NOT NULL,
	started DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_ingest_runs_started ON ingest_runs(started);
`
