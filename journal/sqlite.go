package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLiteJournal struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		return nil, err
	}

	return &SQLiteJournal{db: db}, nil
}

func (j *SQLiteJournal) RecordEntry(e EntryRecord) error {
	_, err := j.db.Exec(`
		INSERT INTO entries
		(entry_id, kind, bank_id, account_id, amount, interest_rate)
		VALUES (?, ?, ?, ?, ?, ?)`,
		e.EntryID, e.Kind, e.BankID, e.AccountID, e.Amount, e.InterestRate,
	)
	return err
}

func (j *SQLiteJournal) RecordTick(s TickSnapshot) error {
	_, err := j.db.Exec(`
		INSERT INTO ticks
		(tick, persons_employed, goods_produced, goods_sold, goods_demanded,
		 avg_price, avg_salary, corp_balances, person_balances, total_reserve, total_loans)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.Tick, s.PersonsEmployed, s.GoodsProduced, s.GoodsSold, s.GoodsDemanded,
		s.AvgPrice, s.AvgSalary, s.CorpBalances, s.PersonBalances, s.TotalReserve, s.TotalLoans,
	)
	return err
}

func (j *SQLiteJournal) Close() error {
	return j.db.Close()
}
