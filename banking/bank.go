// Package banking implements the monetary settlement core of the
// simulation: banks that own per-account ledgers, a central bank that
// mirrors their net settlement flow, account handles through which all
// agent money moves, and the credit check behind loan issuance.
//
// A Bank is the only mutator of balances and the sole writer of reserve
// deltas. Balances are derived: balance = deposits - withdraws + loans,
// recomputed from the entry history on every read so a withdrawal check
// can never act on a stale cache.
package banking

import (
	"fmt"

	"github.com/rustyeddy/econsim/journal"
	"github.com/rustyeddy/econsim/pkg/id"
)

// DefaultLoanRate is the interest rate stamped on issued loans. Interest
// accrual itself is a future extension; the rate only rides on the record.
const DefaultLoanRate = 0.05

// account is the per-account ledger state, indexed by handle id.
// Accounts are referenced by a stable integer id rather than by object
// identity, which keeps the arena serializable and hash-free.
type account struct {
	handle    *AccountHandle
	deposits  []Deposit
	withdraws []Withdraw
	loans     []Loan
}

type Bank struct {
	id       int
	central  *CentralBank
	accounts []*account
	jrnl     journal.Journal

	// LoanRate is stamped on every issued loan.
	LoanRate float64
}

// NewBank creates a bank and registers it with the central bank, which
// initializes its reserve to zero.
func NewBank(central *CentralBank) *Bank {
	b := &Bank{
		central:  central,
		jrnl:     journal.Nop{},
		LoanRate: DefaultLoanRate,
	}
	b.id = central.registerBank()
	return b
}

// ID returns the bank's stable id assigned by the central bank.
func (b *Bank) ID() int { return b.id }

// SetJournal routes an audit record of every ledger entry to j.
func (b *Bank) SetJournal(j journal.Journal) {
	if j == nil {
		j = journal.Nop{}
	}
	b.jrnl = j
}

// Register creates empty entry histories for the handle and binds it to
// this bank. It must be called before any other operation on the account;
// registering the same handle twice is a contract violation.
func (b *Bank) Register(h *AccountHandle) error {
	if h == nil {
		return ErrNotFound
	}
	if h.bank != nil {
		return fmt.Errorf("register account: %w", ErrDuplicateRegistration)
	}
	h.bank = b
	h.id = len(b.accounts)
	b.accounts = append(b.accounts, &account{handle: h})
	return nil
}

func (b *Bank) lookup(h *AccountHandle) (*account, error) {
	if h == nil || h.bank != b || h.id < 0 || h.id >= len(b.accounts) {
		return nil, fmt.Errorf("account not registered with this bank: %w", ErrNotFound)
	}
	return b.accounts[h.id], nil
}

// Deposit appends a Deposit entry for the account and mirrors the amount
// into the central bank's reserve for this bank. A zero amount is legal.
func (b *Bank) Deposit(amount float64, h *AccountHandle) (string, error) {
	if amount < 0 {
		return "", fmt.Errorf("deposit %v: %w", amount, ErrInvalidAmount)
	}
	acct, err := b.lookup(h)
	if err != nil {
		return "", err
	}

	d := Deposit{ID: id.NewEntryID(), Amount: amount, Account: h, Bank: b}
	acct.deposits = append(acct.deposits, d)

	if err := b.central.AddReserve(amount, b); err != nil {
		return "", fmt.Errorf("deposit reserve update: %w", err)
	}
	if err := b.record(string(KindDeposit), d.ID, h, amount, 0); err != nil {
		return "", err
	}
	return d.ID, nil
}

// Withdraw appends a Withdraw entry and mirrors the amount out of the
// reserve. The balance check is computed from the entry history at call
// time; it fails with ErrInsufficientFunds when amount exceeds it.
func (b *Bank) Withdraw(amount float64, h *AccountHandle) (string, error) {
	if amount < 0 {
		return "", fmt.Errorf("withdraw %v: %w", amount, ErrInvalidAmount)
	}
	acct, err := b.lookup(h)
	if err != nil {
		return "", err
	}
	if balance := balanceOf(acct); amount > balance {
		return "", fmt.Errorf("withdraw %v exceeds balance %v: %w", amount, balance, ErrInsufficientFunds)
	}

	w := Withdraw{ID: id.NewEntryID(), Amount: amount, Account: h, Bank: b}
	acct.withdraws = append(acct.withdraws, w)

	if err := b.central.RemoveReserve(amount, b); err != nil {
		return "", fmt.Errorf("withdraw reserve update: %w", err)
	}
	if err := b.record(string(KindWithdraw), w.ID, h, amount, 0); err != nil {
		return "", err
	}
	return w.ID, nil
}

// Transfer withdraws from one account and deposits into another. The
// deposit is always routed through the recipient's own bank, so an
// inter-bank transfer moves reserve from one bank to the other. If the
// withdrawal fails, no deposit occurs; no partial state is observable.
// A transfer to self is legal and still produces two entries.
func (b *Bank) Transfer(amount float64, from, to *AccountHandle) (string, string, error) {
	if amount < 0 {
		return "", "", fmt.Errorf("transfer %v: %w", amount, ErrInvalidAmount)
	}
	if _, err := b.lookup(from); err != nil {
		return "", "", err
	}
	if to == nil || to.bank == nil {
		return "", "", fmt.Errorf("transfer recipient: %w", ErrNotFound)
	}

	wid, err := b.Withdraw(amount, from)
	if err != nil {
		return "", "", err
	}
	did, err := to.bank.Deposit(amount, to)
	if err != nil {
		return "", "", err
	}
	return wid, did, nil
}

// IssueLoan runs the credit check against the borrower's own forecast and
// revenue trend and, on approval, credits the account with a Loan entry —
// not a Deposit, so borrowed funds stay distinguishable from earned ones
// and the reserve is untouched. Denial is an expected business outcome:
// it returns (nil, nil), never an error.
func (b *Bank) IssueLoan(requested float64, borrower Borrower, h *AccountHandle) (*Loan, error) {
	if requested < 0 {
		return nil, fmt.Errorf("loan request %v: %w", requested, ErrInvalidAmount)
	}
	acct, err := b.lookup(h)
	if err != nil {
		return nil, err
	}

	offer, err := EvaluateCredit(requested, borrower, balanceOf(acct))
	if err != nil {
		return nil, fmt.Errorf("credit check: %w", err)
	}
	if offer == 0 {
		return nil, nil
	}

	loan := Loan{
		ID:           id.NewEntryID(),
		Amount:       offer,
		Lender:       b,
		Borrower:     h,
		InterestRate: b.LoanRate,
	}
	acct.loans = append(acct.loans, loan)

	if err := b.record(string(KindLoan), loan.ID, h, offer, loan.InterestRate); err != nil {
		return nil, err
	}
	return &loan, nil
}

// FindEntry looks id up across the account's deposit and withdraw
// histories only; loans are queried separately via Loans.
func (b *Bank) FindEntry(entryID string, h *AccountHandle) (Entry, error) {
	if entryID == "" {
		return Entry{}, fmt.Errorf("find entry: %w", ErrInvalidID)
	}
	acct, err := b.lookup(h)
	if err != nil {
		return Entry{}, err
	}

	for _, d := range acct.deposits {
		if d.ID == entryID {
			return Entry{ID: d.ID, Kind: KindDeposit, Amount: d.Amount}, nil
		}
	}
	for _, w := range acct.withdraws {
		if w.ID == entryID {
			return Entry{ID: w.ID, Kind: KindWithdraw, Amount: w.Amount}, nil
		}
	}
	return Entry{}, fmt.Errorf("find entry %q: %w", entryID, ErrNotFound)
}

// Balance recomputes the account's balance from its entry history:
// deposits minus withdraws plus loan principal. Loans are a credited
// balance; keeping them in a distinct entry variant preserves the
// reserve invariant, which tracks deposits and withdraws only.
func (b *Bank) Balance(h *AccountHandle) (float64, error) {
	acct, err := b.lookup(h)
	if err != nil {
		return 0, err
	}
	return balanceOf(acct), nil
}

// Loans returns the account's loan history.
func (b *Bank) Loans(h *AccountHandle) ([]Loan, error) {
	acct, err := b.lookup(h)
	if err != nil {
		return nil, err
	}
	out := make([]Loan, len(acct.loans))
	copy(out, acct.loans)
	return out, nil
}

// TotalBalances sums the derived balances of every registered account,
// excluding loan principal so the sum is comparable with the bank's
// reserve (the conservation check in the orchestrator relies on this).
func (b *Bank) TotalBalances() float64 {
	var sum float64
	for _, acct := range b.accounts {
		for _, d := range acct.deposits {
			sum += d.Amount
		}
		for _, w := range acct.withdraws {
			sum -= w.Amount
		}
	}
	return sum
}

func balanceOf(acct *account) float64 {
	var sum float64
	for _, d := range acct.deposits {
		sum += d.Amount
	}
	for _, w := range acct.withdraws {
		sum -= w.Amount
	}
	for _, l := range acct.loans {
		sum += l.Amount
	}
	return sum
}

func (b *Bank) record(kind, entryID string, h *AccountHandle, amount, rate float64) error {
	return b.jrnl.RecordEntry(journal.EntryRecord{
		EntryID:      entryID,
		Kind:         kind,
		BankID:       b.id,
		AccountID:    h.id,
		Amount:       amount,
		InterestRate: rate,
	})
}
