package banking

import "github.com/rustyeddy/econsim/finance"

// Borrower exposes the forecast and trend a bank re-derives to underwrite
// credit independently of whatever the requesting firm concluded itself.
// The bank reads only the borrower's own recorded series, never another
// agent's.
type Borrower interface {
	Forecast() (finance.Forecast, error)
	RevenueTrend() (float64, error)
}

// Credit policy knobs. Constants rather than a config surface: the check
// is part of the settlement core's contract, not a tunable strategy.
const (
	creditMinRunway    = 3    // below this with negative margin: deny
	creditTrendGate    = 0.2  // |trend| threshold for scaling and denial
	creditBaseFrac     = 0.5  // base offer as a fraction of balance
	creditGrowthScale  = 1.5  // reward strong growth
	creditDeclineScale = 0.5  // penalize decline
	creditMarginBonus  = 0.2  // fraction of positive net margin added
	creditMaxFrac      = 0.75 // hard cap as a fraction of balance
)

// EvaluateCredit scores a loan request against the borrower's forecast,
// revenue trend, and current balance. It returns the offered amount; a
// zero offer is a denial, which is an expected outcome, not an error.
// Errors are reserved for contract violations such as requesting credit
// before enough history exists.
func EvaluateCredit(requested float64, borrower Borrower, balance float64) (float64, error) {
	f, err := borrower.Forecast()
	if err != nil {
		return 0, err
	}
	trend, err := borrower.RevenueTrend()
	if err != nil {
		return 0, err
	}

	// Too risky: short runway while losing money, or declining while
	// losing money.
	if f.NetMargin < 0 && (f.Runway < creditMinRunway || trend < -creditTrendGate) {
		return 0, nil
	}

	base := creditBaseFrac * balance
	switch {
	case trend > creditTrendGate:
		base *= creditGrowthScale
	case trend < -creditTrendGate:
		base *= creditDeclineScale
	}
	if f.NetMargin > 0 {
		base += creditMarginBonus * f.NetMargin
	}

	offer := base
	if limit := creditMaxFrac * balance; offer > limit {
		offer = limit
	}
	if offer > requested {
		offer = requested
	}
	if offer < 0 {
		offer = 0
	}
	return offer, nil
}
