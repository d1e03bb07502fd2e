package banking

// CentralBank tracks aggregate liquidity per registered bank. It carries
// no agent-level detail: the reserve for a bank mirrors, in aggregate,
// the net settlement flow (deposits minus withdraws) through that bank.
//
// Reserves are mutated only as a side effect of bank-level deposits and
// withdraws, never directly by agents.
type CentralBank struct {
	reserves []float64
}

func NewCentralBank() *CentralBank {
	return &CentralBank{}
}

// registerBank assigns the next bank id and zeroes its reserve.
// Banks register themselves on construction; see NewBank.
func (cb *CentralBank) registerBank() int {
	cb.reserves = append(cb.reserves, 0)
	return len(cb.reserves) - 1
}

// AddReserve increases a bank's reserve. The mutation is unconditional.
func (cb *CentralBank) AddReserve(amount float64, bank *Bank) error {
	if !cb.knows(bank) {
		return ErrNotFound
	}
	cb.reserves[bank.id] += amount
	return nil
}

// RemoveReserve decreases a bank's reserve. It never validates against a
// negative result: a reserve can only go negative if the owning bank's
// balance invariant was already violated, which is a bug signal worth
// surfacing, not a path to guard.
func (cb *CentralBank) RemoveReserve(amount float64, bank *Bank) error {
	if !cb.knows(bank) {
		return ErrNotFound
	}
	cb.reserves[bank.id] -= amount
	return nil
}

// Reserve returns a bank's current reserve.
func (cb *CentralBank) Reserve(bank *Bank) (float64, error) {
	if !cb.knows(bank) {
		return 0, ErrNotFound
	}
	return cb.reserves[bank.id], nil
}

// TotalReserve sums all bank reserves; the statistics collector and the
// conservation checks read the system-wide liquidity through it.
func (cb *CentralBank) TotalReserve() float64 {
	var sum float64
	for _, r := range cb.reserves {
		sum += r
	}
	return sum
}

func (cb *CentralBank) knows(bank *Bank) bool {
	return bank != nil && bank.central == cb && bank.id >= 0 && bank.id < len(cb.reserves)
}
