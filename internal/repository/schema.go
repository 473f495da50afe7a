package repository

// Schema returns the DDL for the price store, ordered and idempotent.
//
// market_prices deduplicates on (market, commodity, day): ReplacingMergeTree
// keeps the row with the greatest recorded_at per key, so re-collecting the
// same day replaces the earlier observation. Reads use FINAL to fold
// not-yet-merged duplicates.
func Schema(database string) []string {
	return []string{
		`CREATE DATABASE IF NOT EXISTS ` + database,

		`CREATE TABLE IF NOT EXISTS ` + database + `.market_prices (
			market       String,
			commodity    String,
			day          Date,
			price        Float64,
			unit         String,
			volume       Nullable(Float64),
			quality      String,
			source       String,
			verified     UInt8,
			region       String,
			lat          Nullable(Float64),
			lon          Nullable(Float64),
			recorded_at  DateTime
		) ENGINE = ReplacingMergeTree(recorded_at)
		PARTITION BY toYYYYMM(day)
		ORDER BY (market, commodity, day)`,

		`CREATE TABLE IF NOT EXISTS ` + database + `.collection_runs (
			source_name        String,
			operation          String,
			records_collected  Int32,
			status             String,
			error_message      String,
			duration_seconds   Float64,
			collected_at       DateTime
		) ENGINE = MergeTree
		PARTITION BY toYYYYMM(collected_at)
		ORDER BY collected_at`,
	}
}
