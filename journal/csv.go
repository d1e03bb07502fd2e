package journal

import (
	"encoding/csv"
	"os"
	"strconv"
)

type CSVJournal struct {
	entries *csv.Writer
	ticks   *csv.Writer
	ef, tf  *os.File
}

func NewCSV(entriesPath, ticksPath string) (*CSVJournal, error) {
	ef, err := os.Create(entriesPath)
	if err != nil {
		return nil, err
	}
	tf, err := os.Create(ticksPath)
	if err != nil {
		return nil, err
	}

	ew := csv.NewWriter(ef)
	tw := csv.NewWriter(tf)

	if err := ew.Write([]string{"entry_id", "kind", "bank_id", "account_id", "amount", "interest_rate"}); err != nil {
		return nil, err
	}
	if err := tw.Write([]string{"tick", "persons_employed", "goods_produced", "goods_sold", "goods_demanded", "avg_price", "avg_salary", "corp_balances", "person_balances", "total_reserve", "total_loans"}); err != nil {
		return nil, err
	}

	ew.Flush()
	if err := ew.Error(); err != nil {
		return nil, err
	}
	tw.Flush()
	if err := tw.Error(); err != nil {
		return nil, err
	}

	return &CSVJournal{entries: ew, ticks: tw, ef: ef, tf: tf}, nil
}

func (j *CSVJournal) RecordEntry(e EntryRecord) error {
	err := j.entries.Write([]string{
		e.EntryID,
		e.Kind,
		strconv.Itoa(e.BankID),
		strconv.Itoa(e.AccountID),
		f(e.Amount),
		f(e.InterestRate),
	})
	if err != nil {
		return err
	}
	j.entries.Flush()
	return j.entries.Error()
}

func (j *CSVJournal) RecordTick(s TickSnapshot) error {
	err := j.ticks.Write([]string{
		strconv.Itoa(s.Tick),
		strconv.Itoa(s.PersonsEmployed),
		f(s.GoodsProduced),
		f(s.GoodsSold),
		f(s.GoodsDemanded),
		f(s.AvgPrice),
		f(s.AvgSalary),
		f(s.CorpBalances),
		f(s.PersonBalances),
		f(s.TotalReserve),
		f(s.TotalLoans),
	})
	if err != nil {
		return err
	}
	j.ticks.Flush()
	return j.ticks.Error()
}

func (j *CSVJournal) Close() error {
	j.entries.Flush()
	j.ticks.Flush()
	if err := j.ef.Close(); err != nil {
		_ = j.tf.Close()
		return err
	}
	return j.tf.Close()
}

func f(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
