package domain

// UserRecord is the server-side view of an account returned by the
// authentication and current-user endpoints.
type UserRecord struct {
	ID      AccountID
	Name    string
	Balance float64
	Wallet  string
}

// WalletLinked reports whether a payout address is attached server-side.
func (u UserRecord) WalletLinked() bool {
	return u.Wallet != ""
}
