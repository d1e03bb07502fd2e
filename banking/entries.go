package banking

// Ledger entries are immutable once created and retained for the life of
// the simulation; an account's balance is always recomputable from them.

// Kind tags a ledger entry variant.
type Kind string

const (
	KindDeposit  Kind = "deposit"
	KindWithdraw Kind = "withdraw"
	KindLoan     Kind = "loan"
)

// Deposit records funds credited to an account.
type Deposit struct {
	ID      string
	Amount  float64
	Account *AccountHandle // recipient
	Bank    *Bank          // receiving bank
}

// Withdraw records funds debited from an account.
type Withdraw struct {
	ID      string
	Amount  float64
	Account *AccountHandle // source
	Bank    *Bank          // source bank
}

// Loan records borrowed principal credited to an account. Loans are kept
// apart from deposits so earned and borrowed funds stay distinguishable;
// FindEntry never returns them.
type Loan struct {
	ID           string
	Amount       float64 // principal
	Lender       *Bank
	Borrower     *AccountHandle
	InterestRate float64 // carried for a future repayment extension
}

// Entry is the FindEntry result: either a Deposit or a Withdraw.
type Entry struct {
	ID     string
	Kind   Kind
	Amount float64
}
