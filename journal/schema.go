// journal/schema.go
package journal

const Schema = `
CREATE TABLE IF NOT EXISTS entries (
	entry_id TEXT PRIMARY KEY,
	kind TEXT NOT NULL,
	bank_id INTEGER NOT NULL,
	account_id INTEGER NOT NULL,
	amount REAL NOT NULL,
	interest_rate REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS ticks (
	tick INTEGER NOT NULL,
	persons_employed INTEGER NOT NULL,
	goods_produced REAL NOT NULL,
	goods_sold REAL NOT NULL,
	goods_demanded REAL NOT NULL,
	avg_price REAL NOT NULL,
	avg_salary REAL NOT NULL,
	corp_balances REAL NOT NULL,
	person_balances REAL NOT NULL,
	total_reserve REAL NOT NULL,
	total_loans REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_entries_account ON entries(bank_id, account_id);
CREATE INDEX IF NOT EXISTS idx_ticks_tick ON ticks(tick);
`
