// Package finance computes a corporation's financial health from its own
// recorded time series: trailing trends, a multi-period forecast, and a
// recommendation state machine that decides whether the firm borrows,
// cuts costs, changes price, or just keeps watching.
//
// Everything here is derived state. The package holds no mutable state of
// its own and only ever reads the series it is handed.
package finance

import (
	"errors"
	"math"

	"github.com/rustyeddy/econsim/series"
)

// ErrInsufficientHistory is returned when a trend, forecast, or
// recommendation is requested before enough completed ticks exist.
// Calling out of sequence is a contract violation, not a business outcome.
var ErrInsufficientHistory = errors.New("finance: insufficient history")

// Window is the number of completed ticks the forecast and the
// recommendation trends look back over.
const Window = 4

// Trend returns the relative change between the mean of the first half and
// the mean of the second half of the last lookback completed ticks of s,
// strictly before tick. A zero first-half mean floors the trend to 0 rather
// than dividing by zero; an undefined trend is treated as neutral.
func Trend(s *series.Series, tick, lookback int) (float64, error) {
	vals, ok := s.Before(tick, lookback)
	if !ok {
		return 0, ErrInsufficientHistory
	}

	half := lookback / 2
	first := mean(vals[:half])
	second := mean(vals[half:])

	if first == 0 {
		return 0, nil
	}
	return (second - first) / first, nil
}

func mean(vals []float64) float64 {
	if len(vals) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}

// Forecast is the output of Project: ticks of survival at the current loss
// rate, the trailing-window burn, and the trailing-window net margin.
type Forecast struct {
	Runway    float64 // balance / burn; +Inf when burn is zero
	Burn      float64 // max(0, costs - revenue) over the window
	NetMargin float64 // revenue - costs over the window
}

// Project sums the last Window completed ticks of costs and revenue
// (the in-progress tick is excluded) and derives runway, burn, and net
// margin against the given bank balance.
func Project(costs, revenue *series.Series, tick int, balance float64) (Forecast, error) {
	cs, ok := costs.Before(tick, Window)
	if !ok {
		return Forecast{}, ErrInsufficientHistory
	}
	rs, ok := revenue.Before(tick, Window)
	if !ok {
		return Forecast{}, ErrInsufficientHistory
	}

	var totalCosts, totalRevenue float64
	for _, c := range cs {
		totalCosts += c
	}
	for _, r := range rs {
		totalRevenue += r
	}

	f := Forecast{
		NetMargin: totalRevenue - totalCosts,
		Burn:      math.Max(0, totalCosts-totalRevenue),
	}
	if f.Burn > 0 {
		f.Runway = balance / f.Burn
	} else {
		// A non-burning entity has unbounded runway by definition.
		f.Runway = math.Inf(1)
	}
	return f, nil
}
