// Package agents implements the economic agents of the simulation: the
// corporations that produce, price, and sell goods, and the people who
// earn salaries and spend them. All agent money moves through banking
// account handles; all agent history lives in tick-indexed series.
package agents

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/rustyeddy/econsim/banking"
	"github.com/rustyeddy/econsim/finance"
)

// Good is one unit of product, priced at production time.
type Good struct {
	Price float64
}

// Tuning for finance-action execution. How a firm acts on a
// recommendation is its own policy; the recommendation itself comes from
// the finance package.
const (
	priceStep      = 0.05 // relative price move for increase/lower price
	salaryThrottle = 0.95 // salary multiplier for the lower-salary action
	salaryLookback = 6    // sales values consulted by ReviewSalary
)

type Corporation struct {
	Name string

	tick   int
	handle *banking.AccountHandle
	stats  *CorpStats
	goods  []Good
	loans  []banking.Loan

	// employees keeps hiring order. Payroll and layoffs walk it in
	// order, so short payrolls and firings repeat exactly under the
	// same seed.
	employees []*Person

	// PPE is production per employee per tick.
	PPE    int
	Hiring bool
	Alive  bool

	log *zap.SugaredLogger
}

// NewCorporation spawns a corporation with an account at bank.
func NewCorporation(name string, bank *banking.Bank) (*Corporation, error) {
	c := &Corporation{
		Name:   name,
		stats:  NewCorpStats(),
		Hiring: true,
		Alive:  true,
		log:    zap.NewNop().Sugar(),
	}
	h, err := banking.NewAccountHandle(bank, c)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", name, err)
	}
	c.handle = h
	return c, nil
}

func (c *Corporation) SetLogger(log *zap.SugaredLogger) {
	if log != nil {
		c.log = log
	}
}

func (c *Corporation) Handle() *banking.AccountHandle { return c.handle }
func (c *Corporation) Stats() *CorpStats              { return c.stats }
func (c *Corporation) Tick() int                      { return c.tick }
func (c *Corporation) Employees() int                 { return len(c.employees) }
func (c *Corporation) Inventory() int                 { return len(c.goods) }

// Loans returns the corporation's loan list.
func (c *Corporation) Loans() []banking.Loan {
	out := make([]banking.Loan, len(c.loans))
	copy(out, c.loans)
	return out
}

// SetTick moves the corporation to the given simulation tick.
func (c *Corporation) SetTick(tick int) { c.tick = tick }

// InitTickStats seeds the current tick's series entries with defaults.
// Must run before any event of the tick is recorded.
func (c *Corporation) InitTickStats() { c.stats.InitTick(c.tick) }

// Price returns the current price, read from the price series. The
// series is the single source of truth; there is no shadow field.
func (c *Corporation) Price() float64 {
	v, _ := c.stats.Price.Latest()
	return v
}

// SetPrice records a new price at the current tick.
func (c *Corporation) SetPrice(p float64) { c.stats.Price.Record(c.tick, p) }

// Salary returns the current per-employee salary from the salary series.
func (c *Corporation) Salary() float64 {
	v, _ := c.stats.Salary.Latest()
	return v
}

// SetSalary records a new salary at the current tick.
func (c *Corporation) SetSalary(s float64) { c.stats.Salary.Record(c.tick, s) }

// AddEmployee hires a person and re-evaluates whether to keep hiring.
func (c *Corporation) AddEmployee(p *Person) {
	p.Employed = true
	c.employees = append(c.employees, p)
	c.ReviewHiring()
}

// RemoveEmployee lets a person go.
func (c *Corporation) RemoveEmployee(p *Person) {
	for i, e := range c.employees {
		if e == p {
			c.employees = append(c.employees[:i], c.employees[i+1:]...)
			p.Employed = false
			return
		}
	}
}

// ReviewHiring stops hiring once maximum production covers the demand
// registered in the previous tick. Before any tick has completed there
// is no previous entry, so the gate reads the newest recorded demand
// instead; that lets seed demand drive initial staffing.
func (c *Corporation) ReviewHiring() {
	demand, ok := c.stats.Demand.Value(c.tick - 1)
	if !ok {
		demand, _ = c.stats.Demand.Latest()
	}
	maxProduction := float64(len(c.employees) * c.PPE)
	c.Hiring = maxProduction < demand
}

// RegisterDemand accumulates purchase intent into the current tick's
// demand entry. Persons call it while building their purchase queues.
func (c *Corporation) RegisterDemand(n int) {
	c.stats.Demand.Add(c.tick, float64(n))
}

// ProduceGoods manufactures up to the previous tick's unmet demand,
// bounded by capacity (employees times PPE). Inventory carried over from
// earlier ticks is recorded as overstock.
func (c *Corporation) ProduceGoods() {
	c.stats.Overstock.Record(c.tick, float64(len(c.goods)))

	demand, _ := c.stats.Demand.Value(c.tick - 1)
	want := int(demand) - len(c.goods)
	capacity := c.PPE * len(c.employees)

	produced := 0
	price := c.Price()
	for produced < want && produced < capacity {
		c.goods = append(c.goods, Good{Price: price})
		produced++
	}

	c.stats.Production.Record(c.tick, float64(produced))
	c.log.Debugw("produced goods", "corp", c.Name, "tick", c.tick, "produced", produced, "capacity", capacity)
}

// PaySalaries transfers the current salary to every employee the balance
// still covers and records the payout as costs. Running out of funds
// mid-payroll stops the run; the shortfall shows up in the next finance
// review rather than crashing the tick.
func (c *Corporation) PaySalaries() error {
	salary := c.Salary()
	paid := 0
	for _, p := range c.employees {
		_, did, err := c.handle.Transfer(salary, p.Handle())
		if err != nil {
			if errors.Is(err, banking.ErrInsufficientFunds) {
				c.log.Debugw("payroll stopped short", "corp", c.Name, "tick", c.tick, "paid", paid)
				break
			}
			return fmt.Errorf("%s pay salaries: %w", c.Name, err)
		}
		p.LatestSalaryID = did
		c.stats.Costs.Add(c.tick, salary)
		paid++
	}
	c.log.Debugw("paid salaries", "corp", c.Name, "tick", c.tick, "paid", paid, "salary", salary)
	return nil
}

// SellGood sells one unit to the buyer: the buyer's handle transfers the
// current price to the corporation's handle, then the good leaves
// inventory. With empty inventory it returns nil and no money moves.
func (c *Corporation) SellGood(buyer *banking.AccountHandle) (*Good, error) {
	if len(c.goods) == 0 {
		return nil, nil
	}

	price := c.Price()
	if _, _, err := buyer.Transfer(price, c.handle); err != nil {
		return nil, fmt.Errorf("%s sell good: %w", c.Name, err)
	}

	good := c.goods[0]
	c.goods = c.goods[1:]
	c.stats.Sales.Add(c.tick, 1)
	c.stats.Revenue.Add(c.tick, price)
	return &good, nil
}

// ReviewPrice moves the price by the previous tick's relative gap between
// demand and sales. With zero sales or zero demand the price holds.
func (c *Corporation) ReviewPrice() error {
	if c.tick < 1 {
		return fmt.Errorf("%s review price: no completed tick yet", c.Name)
	}

	sales, _ := c.stats.Sales.Value(c.tick - 1)
	demand, _ := c.stats.Demand.Value(c.tick - 1)
	if sales == 0 || demand == 0 {
		return nil
	}

	change := (demand - sales) / sales
	c.SetPrice(c.Price() + change*c.Price())
	return nil
}

// ReviewSalary adjusts the salary by the mean change across the last
// salaryLookback completed sales values. Fewer than two values: no-op.
func (c *Corporation) ReviewSalary() {
	vals := c.lastSalesValues(salaryLookback)
	if len(vals) < 2 {
		return
	}

	var total float64
	for i := 1; i < len(vals); i++ {
		total += vals[i] - vals[i-1]
	}
	avgChange := total / float64(len(vals)-1)
	c.SetSalary(c.Salary() + avgChange)
}

// lastSalesValues returns up to n sales values from completed ticks,
// oldest first. The in-progress tick's seeded zero is excluded so a
// half-finished tick cannot drag the average down.
func (c *Corporation) lastSalesValues(n int) []float64 {
	snap := c.stats.Sales.Snapshot()
	ticks := make([]int, 0, len(snap))
	for t := range snap {
		if t < c.tick {
			ticks = append(ticks, t)
		}
	}
	sort.Ints(ticks)
	if len(ticks) > n {
		ticks = ticks[len(ticks)-n:]
	}
	out := make([]float64, len(ticks))
	for i, t := range ticks {
		out[i] = snap[t]
	}
	return out
}

// Forecast derives runway, burn, and net margin from the corporation's
// own cost and revenue series against its current bank balance. Banks
// call this through the Borrower interface to underwrite credit.
func (c *Corporation) Forecast() (finance.Forecast, error) {
	balance, err := c.handle.Balance()
	if err != nil {
		return finance.Forecast{}, err
	}
	return finance.Project(c.stats.Costs, c.stats.Revenue, c.tick, balance)
}

// RevenueTrend is the trailing revenue trend over the forecast window.
func (c *Corporation) RevenueTrend() (float64, error) {
	return finance.Trend(c.stats.Revenue, c.tick, finance.Window)
}

// ReviewFinances runs the recommendation state machine and acts on it:
// borrow to close a runway gap, cut headcount, throttle salary, or tune
// the price. A denied loan falls back to the no-borrow recommendation.
func (c *Corporation) ReviewFinances(targetRunway float64, allowBorrow bool) error {
	balance, err := c.handle.Balance()
	if err != nil {
		return err
	}

	adv, err := finance.Recommend(finance.Review{
		Costs:        c.stats.Costs,
		Revenue:      c.stats.Revenue,
		Sales:        c.stats.Sales,
		Tick:         c.tick,
		Balance:      balance,
		TargetRunway: targetRunway,
		AllowBorrow:  allowBorrow,
	})
	if err != nil {
		return fmt.Errorf("%s review finances: %w", c.Name, err)
	}

	c.log.Debugw("finance review", "corp", c.Name, "tick", c.tick, "action", adv.Action, "amount", adv.Amount)

	switch adv.Action {
	case finance.BorrowFunds:
		loan, err := c.handle.RequestLoan(adv.Amount, c)
		if err != nil {
			return fmt.Errorf("%s borrow: %w", c.Name, err)
		}
		if loan == nil {
			// Denial is a normal outcome; retry the review without the
			// borrow branch. That fallback is this caller's choice.
			c.log.Debugw("loan denied", "corp", c.Name, "tick", c.tick, "requested", adv.Amount)
			return c.ReviewFinances(targetRunway, false)
		}
		c.loans = append(c.loans, *loan)

	case finance.FireEmployees:
		c.fireForSavings(adv.Amount)

	case finance.LowerSalary:
		c.SetSalary(c.Salary() * salaryThrottle)

	case finance.IncreasePrice:
		c.SetPrice(c.Price() * (1 + priceStep))

	case finance.LowerPrice:
		c.SetPrice(c.Price() * (1 - priceStep))

	case finance.Monitor:
		// Healthy enough; nothing to do.
	}
	return nil
}

// fireForSavings removes just enough employees that the salary saved over
// the forecast window covers the shortfall. Newest hires go first.
func (c *Corporation) fireForSavings(shortfall float64) {
	salary := c.Salary()
	if salary <= 0 || len(c.employees) == 0 {
		return
	}
	toFire := int(math.Ceil(shortfall / (salary * finance.Window)))

	fired := 0
	for fired < toFire && len(c.employees) > 0 {
		c.RemoveEmployee(c.employees[len(c.employees)-1])
		fired++
	}
	c.log.Debugw("reduced headcount", "corp", c.Name, "tick", c.tick, "fired", fired, "remaining", len(c.employees))
}

// TotalLoanPrincipal sums the principal of all loans taken.
func (c *Corporation) TotalLoanPrincipal() float64 {
	var sum float64
	for _, l := range c.loans {
		sum += l.Amount
	}
	return sum
}

// RevenueSeries exposes the revenue series for the statistics collector.
// Collectors receive copies and can never mutate agent state.
func (c *Corporation) RevenueSeries() map[int]float64 { return c.stats.Revenue.Snapshot() }

