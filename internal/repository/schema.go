package repository

// Schema statements are idempotent and run at startup. State tables are
// keyed by symbol with ReplacingMergeTree so an insert acts as an upsert;
// reads use FINAL to collapse versions. Nested per-timeframe maps live in a
// JSON state column since their keys vary per record.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS symbols (
		symbol       String,
		exchange     String,
		label        String,
		price        Float64,
		open         Float64,
		high         Float64,
		low          Float64,
		volume       Float64,
		last_updated Int64,
		has_data     UInt8,
		in_watchlist UInt8,
		updated_at   Int64
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY symbol`,

	`CREATE TABLE IF NOT EXISTS structure_state (
		symbol     String,
		state      String,
		updated_at Int64
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY symbol`,

	`CREATE TABLE IF NOT EXISTS momentum_state (
		symbol     String,
		state      String,
		updated_at Int64
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY symbol`,

	`CREATE TABLE IF NOT EXISTS zone_state (
		symbol     String,
		state      String,
		updated_at Int64
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY symbol`,

	`CREATE TABLE IF NOT EXISTS algo_state (
		symbol     String,
		state      String,
		updated_at Int64
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY symbol`,

	`CREATE TABLE IF NOT EXISTS alerts (
		id             Int64,
		symbol         String,
		alert_type     String,
		alert_category String,
		direction      String,
		timeframe      String,
		price_at_alert Float64,
		message        String,
		importance     String,
		timestamp      Int64,
		show_in_panel  UInt8
	) ENGINE = ReplacingMergeTree()
	ORDER BY id`,

	`CREATE TABLE IF NOT EXISTS trade_setups (
		id               String,
		symbol           String,
		setup_type       String,
		direction        String,
		entry_price      Float64,
		detected_at      Int64,
		zone_timeframes  String,
		structure_signal String,
		caution_count    Int32,
		has_dots         UInt8,
		has_squares      UInt8,
		confluence_score Int32,
		status           String,
		exit_price       Float64,
		exit_timestamp   Int64,
		updated_at       Int64
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY id`,

	`CREATE TABLE IF NOT EXISTS alert_settings (
		alert_type    String,
		show_in_panel UInt8,
		importance    String,
		updated_at    Int64
	) ENGINE = ReplacingMergeTree(updated_at)
	ORDER BY alert_type`,
}

// SchemaStatements returns the DDL to run at startup.
func SchemaStatements() []string {
	return schemaStatements
}

func boolToUInt8(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
