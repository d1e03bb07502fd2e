package banking

// AccountHandle is the capability object binding one economic agent to
// one bank's ledger. Agents never touch a Bank directly; all settlement
// flows through their handle. A handle is created once per agent at spawn
// and is never re-bound to a different bank.
type AccountHandle struct {
	bank  *Bank
	id    int
	owner any
}

// NewAccountHandle creates a handle for owner and registers it with bank.
func NewAccountHandle(bank *Bank, owner any) (*AccountHandle, error) {
	h := &AccountHandle{id: -1, owner: owner}
	if err := bank.Register(h); err != nil {
		return nil, err
	}
	return h, nil
}

// Bank returns the owning bank.
func (h *AccountHandle) Bank() *Bank { return h.bank }

// Owner returns the opaque owner reference the handle was created with.
func (h *AccountHandle) Owner() any { return h.owner }

// Balance returns the account's current derived balance.
func (h *AccountHandle) Balance() (float64, error) {
	return h.bank.Balance(h)
}

// Deposit credits amount to the account and returns the entry id.
func (h *AccountHandle) Deposit(amount float64) (string, error) {
	return h.bank.Deposit(amount, h)
}

// Withdraw debits amount from the account and returns the entry id.
func (h *AccountHandle) Withdraw(amount float64) (string, error) {
	return h.bank.Withdraw(amount, h)
}

// Transfer moves amount to another handle, routed through the recipient's
// own bank. It returns the withdraw and deposit entry ids.
func (h *AccountHandle) Transfer(amount float64, to *AccountHandle) (string, string, error) {
	return h.bank.Transfer(amount, h, to)
}

// FindEntry looks up a deposit or withdraw entry by id.
func (h *AccountHandle) FindEntry(entryID string) (Entry, error) {
	return h.bank.FindEntry(entryID, h)
}

// RequestLoan asks the owning bank for credit. A nil loan with a nil
// error means the request was denied.
func (h *AccountHandle) RequestLoan(amount float64, borrower Borrower) (*Loan, error) {
	return h.bank.IssueLoan(amount, borrower, h)
}

// Loans returns the account's loan history.
func (h *AccountHandle) Loans() ([]Loan, error) {
	return h.bank.Loans(h)
}
