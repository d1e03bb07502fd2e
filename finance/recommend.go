package finance

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/econsim/series"
)

// Action is a finance-action recommendation.
type Action string

const (
	IncreasePrice Action = "increase_price"
	LowerPrice    Action = "lower_price"
	BorrowFunds   Action = "borrow_funds"
	FireEmployees Action = "fire_employees"
	LowerSalary   Action = "lower_salary"
	Monitor       Action = "monitor"
)

const (
	// DefaultTargetRunway is how many ticks of runway a firm aims to hold.
	DefaultTargetRunway = 6

	// minRunway is the floor below which a declining firm cuts headcount
	// instead of throttling salary growth.
	minRunway = 3
)

// Advice is a recommendation plus the monetary amount it applies to
// (the borrow amount or the cost reduction; zero where not applicable).
type Advice struct {
	Action Action
	Amount float64
}

// Review is the input to Recommend: the firm's own recorded series, the
// current (in-progress) tick, and its bank balance at review time.
type Review struct {
	Costs   *series.Series
	Revenue *series.Series
	Sales   *series.Series

	Tick    int
	Balance float64

	// TargetRunway defaults to DefaultTargetRunway when zero.
	TargetRunway float64

	// AllowBorrow gates the borrow branch; callers retrying after a
	// denied loan flip it off.
	AllowBorrow bool
}

// Recommend runs the finance-action state machine.
//
// A profitable firm never needs financing, so profitability short-circuits
// straight to price tuning driven by the sales trend. A loss-making firm
// below its target runway borrows while revenue still trends up, cuts
// headcount when runway is critically short, and otherwise throttles
// salary. A loss-making firm still above target just monitors.
func Recommend(r Review) (Advice, error) {
	target := r.TargetRunway
	if target == 0 {
		target = DefaultTargetRunway
	}

	f, err := Project(r.Costs, r.Revenue, r.Tick, r.Balance)
	if err != nil {
		return Advice{}, err
	}
	revenueTrend, err := Trend(r.Revenue, r.Tick, Window)
	if err != nil {
		return Advice{}, err
	}
	salesTrend, err := Trend(r.Sales, r.Tick, Window)
	if err != nil {
		return Advice{}, err
	}

	// Runway shortfall priced at the current burn rate. When burn is zero
	// the runway is infinite and there is nothing missing.
	var missing float64
	if f.Burn > 0 {
		monthlyBurn := f.Burn / Window
		missing = (target - f.Runway) * monthlyBurn
	}

	if f.NetMargin > 0 {
		if salesTrend >= 0 {
			return Advice{Action: IncreasePrice}, nil
		}
		return Advice{Action: LowerPrice}, nil
	}

	if missing > 0 {
		switch {
		case revenueTrend >= 0 && r.AllowBorrow:
			// Borrow just enough to close the runway gap at current burn.
			return Advice{Action: BorrowFunds, Amount: round2(missing)}, nil
		case f.Runway < minRunway:
			return Advice{Action: FireEmployees, Amount: round2(missing)}, nil
		default:
			return Advice{Action: LowerSalary}, nil
		}
	}

	return Advice{Action: Monitor}, nil
}

// round2 rounds a monetary amount to 2 decimal places.
func round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}
