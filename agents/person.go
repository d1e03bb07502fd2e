package agents

import (
	"fmt"
	"math/rand"

	"github.com/rustyeddy/econsim/banking"
)

// Person is a consumer: it earns a salary through employment, splits it
// between spending and saving by its marginal propensity to consume, and
// buys goods from corporations chosen at random with inverse-price weight.
type Person struct {
	tick   int
	handle *banking.AccountHandle

	// MPC is the marginal propensity to consume: the share of the latest
	// salary the person tries to spend each tick.
	MPC float64

	Employed       bool
	LatestSalaryID string

	boughtGoods    []Good
	latestSpending float64
	latestQueue    int
}

// NewPerson spawns a person with an account at bank.
func NewPerson(bank *banking.Bank) (*Person, error) {
	p := &Person{MPC: 0.5}
	h, err := banking.NewAccountHandle(bank, p)
	if err != nil {
		return nil, fmt.Errorf("spawn person: %w", err)
	}
	p.handle = h
	return p, nil
}

func (p *Person) Handle() *banking.AccountHandle { return p.handle }
func (p *Person) SetTick(tick int)               { p.tick = tick }
func (p *Person) GoodsOwned() int                { return len(p.boughtGoods) }
func (p *Person) LatestSpending() float64        { return p.latestSpending }
func (p *Person) LatestQueueSize() int           { return p.latestQueue }

// chooseCorporation picks one corporation at random, weighted by inverse
// price so cheaper producers see more demand.
func chooseCorporation(corps []*Corporation, rng *rand.Rand) *Corporation {
	var total float64
	weights := make([]float64, len(corps))
	for i, c := range corps {
		price := c.Price()
		if price <= 0 {
			continue
		}
		weights[i] = 1 / price
		total += weights[i]
	}
	if total == 0 {
		return nil
	}

	r := rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 && w > 0 {
			return corps[i]
		}
	}
	return corps[len(corps)-1]
}

// PurchaseQueue builds a shopping list bounded by budget, registering
// demand with each chosen corporation as it goes. Demand registration
// happens at queue time so producers see intent even when they later
// cannot fill it.
func (p *Person) PurchaseQueue(corps []*Corporation, budget float64, rng *rand.Rand) []*Corporation {
	var queue []*Corporation
	for budget > 0 {
		affordable := false
		for _, c := range corps {
			if price := c.Price(); price > 0 && price <= budget {
				affordable = true
				break
			}
		}
		if !affordable {
			break
		}

		c := chooseCorporation(corps, rng)
		if c == nil {
			break
		}
		if price := c.Price(); price <= budget {
			budget -= price
			c.RegisterDemand(1)
			queue = append(queue, c)
		}
	}
	p.latestQueue = len(queue)
	return queue
}

// BuyGoods works through the purchase queue, buying from each corporation
// that still has inventory. It returns the number of goods bought.
func (p *Person) BuyGoods(corps []*Corporation, budget float64, rng *rand.Rand) (int, error) {
	queue := p.PurchaseQueue(corps, budget, rng)
	bought := 0
	for _, c := range queue {
		good, err := c.SellGood(p.handle)
		if err != nil {
			return bought, err
		}
		if good != nil {
			bought++
			p.boughtGoods = append(p.boughtGoods, *good)
			p.latestSpending += good.Price
		}
	}
	return bought, nil
}

// Spend derives this tick's budget from the latest salary deposit scaled
// by MPC, capped at the current balance, and goes shopping with it.
func (p *Person) Spend(corps []*Corporation, rng *rand.Rand) (int, error) {
	balance, err := p.handle.Balance()
	if err != nil {
		return 0, err
	}

	budget := balance
	if p.LatestSalaryID != "" {
		entry, err := p.handle.FindEntry(p.LatestSalaryID)
		if err != nil {
			return 0, fmt.Errorf("spend: %w", err)
		}
		budget = entry.Amount * p.MPC
	}
	if budget > balance {
		budget = balance
	}

	return p.BuyGoods(corps, budget, rng)
}

// CleanUp resets per-tick scratch state once a tick completes.
func (p *Person) CleanUp() {
	p.latestSpending = 0
	p.latestQueue = 0
}
