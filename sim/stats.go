package sim

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/econsim/journal"
	"github.com/rustyeddy/econsim/series"
)

// Stats is the fixed record of economy-wide series, one entry per tick.
type Stats struct {
	PersonsEmployed *series.Series
	GoodsProduced   *series.Series
	GoodsSold       *series.Series
	GoodsDemanded   *series.Series
	GoodsOverstock  *series.Series
	AvgPrice        *series.Series
	AvgSalary       *series.Series
	CorpBalances    *series.Series
	PersonBalances  *series.Series
	TotalReserve    *series.Series
	TotalLoans      *series.Series
}

func NewStats() *Stats {
	return &Stats{
		PersonsEmployed: series.New(),
		GoodsProduced:   series.New(),
		GoodsSold:       series.New(),
		GoodsDemanded:   series.New(),
		GoodsOverstock:  series.New(),
		AvgPrice:        series.New(),
		AvgSalary:       series.New(),
		CorpBalances:    series.New(),
		PersonBalances:  series.New(),
		TotalReserve:    series.New(),
		TotalLoans:      series.New(),
	}
}

// collectStats aggregates the tick that just completed into the stats
// series and hands a snapshot to the journal.
func (s *Simulation) collectStats() error {
	alive := s.aliveCorporations()

	employed := 0
	for _, p := range s.people {
		if p.Employed {
			employed++
		}
	}

	var produced, sold, demanded, overstock float64
	var priceSum, salarySum, corpBalances, totalLoans float64
	for _, c := range alive {
		v, _ := c.Stats().Production.Value(s.tick)
		produced += v
		v, _ = c.Stats().Sales.Value(s.tick)
		sold += v
		v, _ = c.Stats().Demand.Value(s.tick)
		demanded += v
		v, _ = c.Stats().Overstock.Value(s.tick)
		overstock += v
		priceSum += c.Price()
		salarySum += c.Salary()
		totalLoans += c.TotalLoanPrincipal()

		balance, err := c.Handle().Balance()
		if err != nil {
			return err
		}
		corpBalances += balance
	}

	var personBalances float64
	for _, p := range s.people {
		balance, err := p.Handle().Balance()
		if err != nil {
			return err
		}
		personBalances += balance
	}

	var avgPrice, avgSalary float64
	if len(alive) > 0 {
		avgPrice = round2(priceSum / float64(len(alive)))
		avgSalary = round2(salarySum / float64(len(alive)))
	}

	s.stats.PersonsEmployed.Record(s.tick, float64(employed))
	s.stats.GoodsProduced.Record(s.tick, produced)
	s.stats.GoodsSold.Record(s.tick, sold)
	s.stats.GoodsDemanded.Record(s.tick, demanded)
	s.stats.GoodsOverstock.Record(s.tick, overstock)
	s.stats.AvgPrice.Record(s.tick, avgPrice)
	s.stats.AvgSalary.Record(s.tick, avgSalary)
	s.stats.CorpBalances.Record(s.tick, round2(corpBalances))
	s.stats.PersonBalances.Record(s.tick, round2(personBalances))
	s.stats.TotalReserve.Record(s.tick, round2(s.central.TotalReserve()))
	s.stats.TotalLoans.Record(s.tick, round2(totalLoans))

	return s.jrnl.RecordTick(journal.TickSnapshot{
		Tick:            s.tick,
		PersonsEmployed: employed,
		GoodsProduced:   produced,
		GoodsSold:       sold,
		GoodsDemanded:   demanded,
		AvgPrice:        avgPrice,
		AvgSalary:       avgSalary,
		CorpBalances:    round2(corpBalances),
		PersonBalances:  round2(personBalances),
		TotalReserve:    round2(s.central.TotalReserve()),
		TotalLoans:      round2(totalLoans),
	})
}

func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
