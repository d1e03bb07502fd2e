// Package sim sequences the economy: it spawns banks, corporations, and
// people from seeds, then advances them one strictly ordered tick at a
// time. Ordering is a correctness requirement, not an optimization: the
// finance review of tick T must see prior ticks finalized and tick T's
// own entries still in progress, or trend computation would feed on
// half-written data.
package sim

import (
	"fmt"
	"math/rand"
	"time"

	"go.uber.org/zap"

	"github.com/rustyeddy/econsim/agents"
	"github.com/rustyeddy/econsim/banking"
	"github.com/rustyeddy/econsim/config"
	"github.com/rustyeddy/econsim/journal"
)

// financeWarmup is the first tick at which enough completed history
// exists for the finance review to run.
const financeWarmup = 4

type Simulation struct {
	cfg  *config.Config
	log  *zap.SugaredLogger
	jrnl journal.Journal
	rng  *rand.Rand

	central      *banking.CentralBank
	banks        []*banking.Bank
	corporations []*agents.Corporation
	people       []*agents.Person

	tick  int
	stats *Stats
}

// New builds an initialized simulation: banks registered with a fresh
// central bank, corporations and people spawned and seeded, the labor
// market matched once.
func New(cfg *config.Config, log *zap.SugaredLogger, jrnl journal.Journal) (*Simulation, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if jrnl == nil {
		jrnl = journal.Nop{}
	}

	seed := cfg.Simulation.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	s := &Simulation{
		cfg:   cfg,
		log:   log,
		jrnl:  jrnl,
		rng:   rand.New(rand.NewSource(seed)),
		stats: NewStats(),
	}
	if err := s.initialize(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Simulation) initialize() error {
	s.central = banking.NewCentralBank()
	for i := 0; i < s.cfg.Simulation.Banks; i++ {
		b := banking.NewBank(s.central)
		b.SetJournal(s.jrnl)
		s.banks = append(s.banks, b)
	}

	for i := 0; i < s.cfg.Simulation.People; i++ {
		p, err := agents.NewPerson(s.banks[s.rng.Intn(len(s.banks))])
		if err != nil {
			return err
		}
		p.MPC = s.cfg.Person.MPC
		s.people = append(s.people, p)
	}

	seed := s.cfg.Corporation
	for i := 0; i < s.cfg.Simulation.Corporations; i++ {
		c, err := agents.NewCorporation(
			fmt.Sprintf("corp-%d", i+1),
			s.banks[s.rng.Intn(len(s.banks))],
		)
		if err != nil {
			return err
		}
		c.SetLogger(s.log)
		c.PPE = seed.PPE
		c.SetPrice(seed.Price)
		c.SetSalary(seed.Salary)
		c.RegisterDemand(seed.Demand)
		if _, err := c.Handle().Deposit(seed.Balance); err != nil {
			return fmt.Errorf("seed %s balance: %w", c.Name, err)
		}
		s.corporations = append(s.corporations, c)
	}

	hired := s.laborMarket()
	s.log.Infow("initialized economy",
		"banks", len(s.banks),
		"corporations", len(s.corporations),
		"people", len(s.people),
		"hired", hired,
	)
	return nil
}

// laborMarket matches unemployed people to hiring corporations, choosing
// employers at random weighted by salary.
func (s *Simulation) laborMarket() int {
	var unemployed []*agents.Person
	for _, p := range s.people {
		if !p.Employed {
			unemployed = append(unemployed, p)
		}
	}
	s.rng.Shuffle(len(unemployed), func(i, j int) {
		unemployed[i], unemployed[j] = unemployed[j], unemployed[i]
	})

	hired := 0
	for _, p := range unemployed {
		c := s.chooseEmployer()
		if c == nil {
			break
		}
		c.AddEmployee(p)
		hired++
	}
	return hired
}

func (s *Simulation) chooseEmployer() *agents.Corporation {
	var total float64
	weights := make([]float64, len(s.corporations))
	for i, c := range s.corporations {
		if !c.Hiring || !c.Alive {
			continue
		}
		weights[i] = c.Salary()
		total += weights[i]
	}
	if total == 0 {
		return nil
	}

	r := s.rng.Float64() * total
	for i, w := range weights {
		r -= w
		if r <= 0 && w > 0 {
			return s.corporations[i]
		}
	}
	return nil
}

// Tick advances the economy one step in the fixed order: corporations
// (produce, pay, review), government benefits, people spending, cleanup,
// then statistics.
func (s *Simulation) Tick() error {
	s.tick++

	for _, c := range s.corporations {
		if !c.Alive {
			continue
		}
		if err := s.corporationTick(c); err != nil {
			return err
		}
	}

	if s.cfg.Simulation.Benefit > 0 {
		if err := s.governmentTick(); err != nil {
			return err
		}
	}

	if err := s.peopleTick(); err != nil {
		return err
	}

	s.cleanUp()
	return s.collectStats()
}

func (s *Simulation) corporationTick(c *agents.Corporation) error {
	c.SetTick(s.tick)
	c.InitTickStats()
	c.ProduceGoods()
	if err := c.PaySalaries(); err != nil {
		return err
	}

	if s.tick > 1 {
		if err := c.ReviewPrice(); err != nil {
			return err
		}
		c.ReviewSalary()
	}
	if s.tick > financeWarmup {
		if err := c.ReviewFinances(s.cfg.Finance.TargetRunway, s.cfg.Finance.AllowBorrow); err != nil {
			return err
		}
	}
	c.ReviewHiring()
	return nil
}

// governmentTick pays unemployed people a fraction of their last salary,
// or the configured benefit floor when they never earned one.
func (s *Simulation) governmentTick() error {
	const replacementRate = 0.6

	for _, p := range s.people {
		if p.Employed {
			continue
		}

		amount := s.cfg.Simulation.Benefit
		if p.LatestSalaryID != "" {
			entry, err := p.Handle().FindEntry(p.LatestSalaryID)
			if err != nil {
				return fmt.Errorf("government tick: %w", err)
			}
			amount = entry.Amount
		}

		tid, err := p.Handle().Deposit(amount * replacementRate)
		if err != nil {
			return fmt.Errorf("government tick: %w", err)
		}
		p.LatestSalaryID = tid
	}
	return nil
}

func (s *Simulation) peopleTick() error {
	alive := s.aliveCorporations()
	if len(alive) == 0 {
		return nil
	}

	for _, p := range s.people {
		p.SetTick(s.tick)
		balance, err := p.Handle().Balance()
		if err != nil {
			return err
		}
		if balance <= 0 {
			continue
		}
		if _, err := p.Spend(alive, s.rng); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) cleanUp() {
	for _, p := range s.people {
		p.CleanUp()
	}
}

func (s *Simulation) aliveCorporations() []*agents.Corporation {
	out := make([]*agents.Corporation, 0, len(s.corporations))
	for _, c := range s.corporations {
		if c.Alive {
			out = append(out, c)
		}
	}
	return out
}

// Run advances the configured number of ticks.
func (s *Simulation) Run() error {
	s.log.Infow("starting run", "ticks", s.cfg.Simulation.Ticks)
	for i := 0; i < s.cfg.Simulation.Ticks; i++ {
		if err := s.Tick(); err != nil {
			return fmt.Errorf("tick %d: %w", s.tick, err)
		}
	}
	s.log.Infow("run complete", "ticks", s.tick)
	return nil
}

// CurrentTick returns the last completed tick number.
func (s *Simulation) CurrentTick() int { return s.tick }

// Banks exposes the banks for inspection.
func (s *Simulation) Banks() []*banking.Bank { return s.banks }

// CentralBank exposes the central bank for inspection.
func (s *Simulation) CentralBank() *banking.CentralBank { return s.central }

// Corporations exposes the corporations for inspection.
func (s *Simulation) Corporations() []*agents.Corporation { return s.corporations }

// People exposes the people for inspection.
func (s *Simulation) People() []*agents.Person { return s.people }

// Stats exposes the aggregate statistics series. Collectors read them
// through snapshots and must never mutate them.
func (s *Simulation) Stats() *Stats { return s.stats }

// ConservationGap returns the difference between the central bank's total
// reserve and the sum of all account balances net of loans. It is zero
// whenever the settlement invariants hold; a nonzero gap is a bug signal.
func (s *Simulation) ConservationGap() float64 {
	var balances float64
	for _, b := range s.banks {
		balances += b.TotalBalances()
	}
	return s.central.TotalReserve() - balances
}
