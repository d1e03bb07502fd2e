// Package journal records an audit trail of the simulation: every ledger
// entry a bank appends and a per-tick snapshot of aggregate statistics.
// The journal is write-only output for post-run analysis; the simulation
// never reads its own state back from it.
package journal

// EntryRecord is the audit row for one ledger entry.
type EntryRecord struct {
	EntryID      string
	Kind         string // "deposit", "withdraw", "loan"
	BankID       int
	AccountID    int
	Amount       float64
	InterestRate float64 // zero except for loans
}

// TickSnapshot is the aggregate state of the economy after one tick.
type TickSnapshot struct {
	Tick            int
	PersonsEmployed int
	GoodsProduced   float64
	GoodsSold       float64
	GoodsDemanded   float64
	AvgPrice        float64
	AvgSalary       float64
	CorpBalances    float64
	PersonBalances  float64
	TotalReserve    float64
	TotalLoans      float64
}

type Journal interface {
	RecordEntry(EntryRecord) error
	RecordTick(TickSnapshot) error
	Close() error
}
