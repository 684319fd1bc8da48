package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestAccountTypeValid(t *testing.T) {
	require.True(t, Savings.Valid())
	require.True(t, Investment.Valid())
	require.True(t, Cheque.Valid())
	require.False(t, AccountType("").Valid())
	require.False(t, AccountType("CRYPTO").Valid())
}

func TestAccountTypePrefix(t *testing.T) {
	require.Equal(t, "SAV", Savings.Prefix())
	require.Equal(t, "INV", Investment.Prefix())
	require.Equal(t, "CHQ", Cheque.Prefix())
}

func TestAccountTypeInterestRate(t *testing.T) {
	rate, ok := Savings.InterestRate()
	require.True(t, ok)
	require.True(t, rate.Equal(decimal.RequireFromString("0.0005")))

	rate, ok = Investment.InterestRate()
	require.True(t, ok)
	require.True(t, rate.Equal(decimal.RequireFromString("0.05")))

	_, ok = Cheque.InterestRate()
	require.False(t, ok)
}

func TestAccountTypeSupportsWithdrawal(t *testing.T) {
	require.False(t, Savings.SupportsWithdrawal())
	require.True(t, Investment.SupportsWithdrawal())
	require.True(t, Cheque.SupportsWithdrawal())
}

func TestAccountDetails(t *testing.T) {
	testCases := []struct {
		name    string
		account Account
		want    string
	}{
		{
			name: "Savings",
			account: Account{
				Number:          "SAV00112345",
				Type:            Savings,
				Balance:         decimal.RequireFromString("1000.50"),
				AccruedInterest: decimal.RequireFromString("0.50"),
			},
			want: "Savings Account\nAccount Number: SAV00112345\nBalance: BWP 1000.50\nInterest Rate: 0.05%\nAccrued Interest: BWP 0.50\nNote: No withdrawals allowed",
		},
		{
			name: "Investment",
			account: Account{
				Number:          "INV00112345",
				Type:            Investment,
				Balance:         decimal.RequireFromString("525.00"),
				AccruedInterest: decimal.RequireFromString("25.00"),
			},
			want: "Investment Account\nAccount Number: INV00112345\nBalance: BWP 525.00\nInterest Rate: 5%\nAccrued Interest: BWP 25.00\nWithdrawals: Allowed",
		},
		{
			name: "Cheque",
			account: Account{
				Number:          "CHQ00112345",
				Type:            Cheque,
				Balance:         decimal.RequireFromString("250.00"),
				EmployerName:    "Acme",
				EmployerAddress: "Plot 1, Gaborone",
			},
			want: "Cheque Account\nAccount Number: CHQ00112345\nBalance: BWP 250.00\nEmployer: Acme\nEmployer Address: Plot 1, Gaborone\nDeposits & Withdrawals: Allowed",
		},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			tc.account.OpenedAt = time.Now()
			require.Equal(t, tc.want, tc.account.Details())
		})
	}
}

func TestTransactionTypeSign(t *testing.T) {
	one := decimal.NewFromInt(1)

	require.True(t, Deposit.Sign().Equal(one))
	require.True(t, Interest.Sign().Equal(one))
	require.True(t, Opening.Sign().Equal(one))
	require.True(t, Withdrawal.Sign().Equal(one.Neg()))
}
