package agents

import "github.com/rustyeddy/econsim/series"

// CorpStats is the fixed record of every series a corporation tracks.
// One field per statistic keeps the tracked set compile-time checked;
// tick defaults are seeded from the declarative table in seedDefaults.
type CorpStats struct {
	Sales      *series.Series
	Demand     *series.Series
	Production *series.Series
	Price      *series.Series
	Salary     *series.Series
	Revenue    *series.Series
	Costs      *series.Series
	Overstock  *series.Series
}

func NewCorpStats() *CorpStats {
	return &CorpStats{
		Sales:      series.New(),
		Demand:     series.New(),
		Production: series.New(),
		Price:      series.New(),
		Salary:     series.New(),
		Revenue:    series.New(),
		Costs:      series.New(),
		Overstock:  series.New(),
	}
}

// seedDefaults lists each series with the default seeded at the start of
// a tick. Price and salary carry their latest value forward; flow stats
// restart at zero and accumulate as events occur during the tick.
func (s *CorpStats) seedDefaults() []struct {
	ser *series.Series
	def func() float64
} {
	carry := func(ser *series.Series) func() float64 {
		return func() float64 {
			v, _ := ser.Latest()
			return v
		}
	}
	zero := func() float64 { return 0 }

	return []struct {
		ser *series.Series
		def func() float64
	}{
		{s.Sales, zero},
		{s.Demand, zero},
		{s.Production, zero},
		{s.Revenue, zero},
		{s.Costs, zero},
		{s.Overstock, zero},
		{s.Price, carry(s.Price)},
		{s.Salary, carry(s.Salary)},
	}
}

// InitTick seeds every series with its default for tick, leaving any
// value already recorded for that tick untouched.
func (s *CorpStats) InitTick(tick int) {
	for _, d := range s.seedDefaults() {
		if !d.ser.Has(tick) {
			d.ser.Record(tick, d.def())
		}
	}
}
