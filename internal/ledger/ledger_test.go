package ledger

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/voltsbank/volts-bank/internal/domain"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()

	d, err := decimal.NewFromString(s)
	require.NoError(t, err)

	return d
}

func testAccount(accountType domain.AccountType, balance string) domain.Account {
	a := domain.Account{
		Number:          accountType.Prefix() + "00112345",
		CustomerID:      1,
		Type:            accountType,
		Balance:         decimal.RequireFromString(balance),
		AccruedInterest: decimal.Zero,
		Branch:          "Gaborone Main",
		OpenedAt:        time.Now(),
	}

	if accountType == domain.Cheque {
		a.EmployerName = "Acme"
		a.EmployerAddress = "Plot 1, Gaborone"
	}

	return a
}

func TestOpen(t *testing.T) {
	now := time.Now()

	testCases := []struct {
		name          string
		arg           domain.OpenAccountParams
		checkResponse func(t *testing.T, res domain.LedgerResult, err error)
	}{
		{
			name: "SavingsNoInitialDeposit",
			arg: domain.OpenAccountParams{
				CustomerID: 1,
				Type:       domain.Savings,
				Branch:     "Gaborone Main",
			},
			checkResponse: func(t *testing.T, res domain.LedgerResult, err error) {
				require.NoError(t, err)
				require.True(t, res.Account.Balance.IsZero())
				require.False(t, res.HasEntry())
			},
		},
		{
			name: "SavingsWithInitialDeposit",
			arg: domain.OpenAccountParams{
				CustomerID:     1,
				Type:           domain.Savings,
				Branch:         "Gaborone Main",
				InitialDeposit: decimal.RequireFromString("100.00"),
			},
			checkResponse: func(t *testing.T, res domain.LedgerResult, err error) {
				require.NoError(t, err)
				require.True(t, res.Account.Balance.Equal(decimal.RequireFromString("100.00")))
				require.True(t, res.HasEntry())
				require.Equal(t, domain.Opening, res.Transaction.Type)
				require.True(t, res.Transaction.Amount.Equal(decimal.RequireFromString("100.00")))
				require.True(t, res.Transaction.BalanceAfter.Equal(res.Account.Balance))
			},
		},
		{
			name: "InvestmentBelowMinimum",
			arg: domain.OpenAccountParams{
				CustomerID:     1,
				Type:           domain.Investment,
				Branch:         "Gaborone Main",
				InitialDeposit: decimal.RequireFromString("499.99"),
			},
			checkResponse: func(t *testing.T, res domain.LedgerResult, err error) {
				require.ErrorIs(t, err, domain.ErrBelowMinimumOpeningBalance)
				require.Empty(t, res)
			},
		},
		{
			name: "InvestmentAtMinimum",
			arg: domain.OpenAccountParams{
				CustomerID:     1,
				Type:           domain.Investment,
				Branch:         "Gaborone Main",
				InitialDeposit: decimal.RequireFromString("500.00"),
			},
			checkResponse: func(t *testing.T, res domain.LedgerResult, err error) {
				require.NoError(t, err)
				require.True(t, res.Account.Balance.Equal(decimal.RequireFromString("500.00")))
				require.True(t, res.HasEntry())
				require.Equal(t, domain.Opening, res.Transaction.Type)
			},
		},
		{
			name: "ChequeWithoutEmployerName",
			arg: domain.OpenAccountParams{
				CustomerID:      1,
				Type:            domain.Cheque,
				Branch:          "Gaborone Main",
				InitialDeposit:  decimal.RequireFromString("200.00"),
				EmployerAddress: "Plot 1, Gaborone",
			},
			checkResponse: func(t *testing.T, res domain.LedgerResult, err error) {
				require.ErrorIs(t, err, domain.ErrEmployerNameRequired)
				require.Empty(t, res)
			},
		},
		{
			name: "ChequeWithEmployer",
			arg: domain.OpenAccountParams{
				CustomerID:      1,
				Type:            domain.Cheque,
				Branch:          "Gaborone Main",
				InitialDeposit:  decimal.RequireFromString("200.00"),
				EmployerName:    "Acme",
				EmployerAddress: "Plot 1, Gaborone",
			},
			checkResponse: func(t *testing.T, res domain.LedgerResult, err error) {
				require.NoError(t, err)
				require.Equal(t, "Acme", res.Account.EmployerName)
				require.True(t, res.Account.Balance.Equal(decimal.RequireFromString("200.00")))
			},
		},
		{
			name: "NegativeInitialDeposit",
			arg: domain.OpenAccountParams{
				CustomerID:     1,
				Type:           domain.Savings,
				Branch:         "Gaborone Main",
				InitialDeposit: decimal.RequireFromString("-1"),
			},
			checkResponse: func(t *testing.T, res domain.LedgerResult, err error) {
				require.ErrorIs(t, err, domain.ErrNonPositiveAmount)
				require.Empty(t, res)
			},
		},
		{
			name: "InvalidType",
			arg: domain.OpenAccountParams{
				CustomerID: 1,
				Type:       domain.AccountType("CRYPTO"),
				Branch:     "Gaborone Main",
			},
			checkResponse: func(t *testing.T, res domain.LedgerResult, err error) {
				require.ErrorIs(t, err, domain.ErrInvalidAccountType)
				require.Empty(t, res)
			},
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			res, err := Open(tc.arg, tc.arg.Type.Prefix()+"00112345", now)
			tc.checkResponse(t, res, err)
		})
	}
}

func TestDepositIsAlwaysLegal(t *testing.T) {
	now := time.Now()

	for _, accountType := range []domain.AccountType{domain.Savings, domain.Investment, domain.Cheque} {
		account := testAccount(accountType, "1000.00")

		res, err := Deposit(account, dec(t, "50.00"), "", now)
		require.NoError(t, err)
		require.True(t, res.Account.Balance.Equal(dec(t, "1050.00")))
		require.Equal(t, domain.Deposit, res.Transaction.Type)
		require.True(t, res.Transaction.Amount.Equal(dec(t, "50.00")))
		require.True(t, res.Transaction.BalanceAfter.Equal(res.Account.Balance))
		require.Equal(t, DescDeposit, res.Transaction.Description)
	}
}

func TestNonPositiveAmountsRejected(t *testing.T) {
	now := time.Now()

	for _, accountType := range []domain.AccountType{domain.Savings, domain.Investment, domain.Cheque} {
		account := testAccount(accountType, "1000.00")

		for _, amount := range []string{"0", "-5"} {
			res, err := Deposit(account, dec(t, amount), "", now)
			require.ErrorIs(t, err, domain.ErrNonPositiveAmount)
			require.Empty(t, res)
		}

		if accountType.SupportsWithdrawal() {
			res, err := Withdraw(account, dec(t, "0"), "", now)
			require.ErrorIs(t, err, domain.ErrNonPositiveAmount)
			require.Empty(t, res)
		}

		require.True(t, account.Balance.Equal(dec(t, "1000.00")))
	}
}

func TestSavingsNeverWithdrawable(t *testing.T) {
	account := testAccount(domain.Savings, "1000.00")

	// Capability check fires even when the balance would cover the amount.
	res, err := Withdraw(account, dec(t, "1.00"), "", time.Now())
	require.ErrorIs(t, err, domain.ErrWithdrawalNotAllowed)
	require.Empty(t, res)
	require.True(t, account.Balance.Equal(dec(t, "1000.00")))
}

func TestWithdrawInsufficiency(t *testing.T) {
	now := time.Now()
	account := testAccount(domain.Investment, "500.00")

	res, err := Withdraw(account, dec(t, "500.01"), "", now)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	require.Empty(t, res)
	require.True(t, account.Balance.Equal(dec(t, "500.00")))

	res, err = Withdraw(account, dec(t, "500.00"), "", now)
	require.NoError(t, err)
	require.True(t, res.Account.Balance.IsZero())
	require.Equal(t, domain.Withdrawal, res.Transaction.Type)
	require.True(t, res.Transaction.Amount.Equal(dec(t, "500.00")))
}

func TestInterestCompoundsPerCall(t *testing.T) {
	now := time.Now()
	account := testAccount(domain.Savings, "1000.00")

	res, err := AccrueInterest(account, now)
	require.NoError(t, err)
	require.True(t, res.Account.Balance.Equal(dec(t, "1000.50")), "balance = %s", res.Account.Balance)
	require.True(t, res.Account.AccruedInterest.Equal(dec(t, "0.50")))
	require.Equal(t, domain.Interest, res.Transaction.Type)
	require.True(t, res.Transaction.Amount.Equal(dec(t, "0.50")))
	require.Equal(t, "Monthly interest payment - 0.05%", res.Transaction.Description)

	// Second call applies the rate to the new balance, not the original.
	res2, err := AccrueInterest(res.Account, now)
	require.NoError(t, err)
	require.True(t, res2.Account.Balance.Equal(dec(t, "1001.00025")), "balance = %s", res2.Account.Balance)
	require.True(t, res2.Account.AccruedInterest.Equal(dec(t, "1.00025")))
}

func TestInterestOnInvestment(t *testing.T) {
	account := testAccount(domain.Investment, "500.00")

	res, err := AccrueInterest(account, time.Now())
	require.NoError(t, err)
	require.True(t, res.Account.Balance.Equal(dec(t, "525.00")))
	require.True(t, res.Account.AccruedInterest.Equal(dec(t, "25.00")))
	require.Equal(t, "Monthly interest payment - 5%", res.Transaction.Description)
}

func TestInterestOnZeroBalance(t *testing.T) {
	account := testAccount(domain.Savings, "0")

	res, err := AccrueInterest(account, time.Now())
	require.NoError(t, err)
	require.False(t, res.HasEntry())
	require.True(t, res.Account.Balance.IsZero())
	require.True(t, res.Account.AccruedInterest.IsZero())
}

func TestChequeEarnsNoInterest(t *testing.T) {
	account := testAccount(domain.Cheque, "1000.00")

	res, err := AccrueInterest(account, time.Now())
	require.ErrorIs(t, err, domain.ErrNotInterestBearing)
	require.Empty(t, res)
	require.True(t, account.Balance.Equal(dec(t, "1000.00")))
}

func TestChequeEndToEnd(t *testing.T) {
	now := time.Now()
	history := []domain.Transaction{}

	res, err := Open(domain.OpenAccountParams{
		CustomerID:      7,
		Type:            domain.Cheque,
		Branch:          "Francistown",
		InitialDeposit:  dec(t, "200.00"),
		EmployerName:    "Acme",
		EmployerAddress: "Plot 1, Gaborone",
	}, "CHQ00712345", now)
	require.NoError(t, err)
	require.True(t, res.HasEntry())
	require.Equal(t, domain.Opening, res.Transaction.Type)
	require.True(t, res.Transaction.Amount.Equal(dec(t, "200.00")))
	require.True(t, res.Account.Balance.Equal(dec(t, "200.00")))
	history = append(history, res.Transaction)

	res, err = Deposit(res.Account, dec(t, "50.00"), "", now)
	require.NoError(t, err)
	require.Equal(t, domain.Deposit, res.Transaction.Type)
	require.True(t, res.Account.Balance.Equal(dec(t, "250.00")))
	history = append(history, res.Transaction)

	_, err = Withdraw(res.Account, dec(t, "300.00"), "", now)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	require.True(t, res.Account.Balance.Equal(dec(t, "250.00")))

	res, err = Withdraw(res.Account, dec(t, "250.00"), "", now)
	require.NoError(t, err)
	require.Equal(t, domain.Withdrawal, res.Transaction.Type)
	require.True(t, res.Transaction.Amount.Equal(dec(t, "250.00")))
	require.True(t, res.Account.Balance.IsZero())
	history = append(history, res.Transaction)

	// Replaying the history from zero reconstructs the final balance.
	require.True(t, Replay(history).Equal(res.Account.Balance))
}

func TestReplayReconstructsBalance(t *testing.T) {
	now := time.Now()
	account := testAccount(domain.Investment, "0")
	history := []domain.Transaction{}

	amounts := []string{"600.00", "123.45", "0.01"}
	for _, amount := range amounts {
		res, err := Deposit(account, dec(t, amount), "", now)
		require.NoError(t, err)

		account = res.Account
		history = append(history, res.Transaction)
	}

	res, err := AccrueInterest(account, now)
	require.NoError(t, err)
	account = res.Account
	history = append(history, res.Transaction)

	res, err = Withdraw(account, dec(t, "100.00"), "", now)
	require.NoError(t, err)
	account = res.Account
	history = append(history, res.Transaction)

	require.True(t, Replay(history).Equal(account.Balance),
		"replayed %s, balance %s", Replay(history), account.Balance)
}

func TestOperationsDoNotMutateInput(t *testing.T) {
	now := time.Now()
	account := testAccount(domain.Investment, "1000.00")

	_, err := Deposit(account, dec(t, "10.00"), "", now)
	require.NoError(t, err)
	_, err = Withdraw(account, dec(t, "10.00"), "", now)
	require.NoError(t, err)
	_, err = AccrueInterest(account, now)
	require.NoError(t, err)

	require.True(t, account.Balance.Equal(dec(t, "1000.00")))
	require.True(t, account.AccruedInterest.IsZero())
}
