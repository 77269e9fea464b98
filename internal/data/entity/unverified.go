package entity

// UnverifiedCustomer is the staging record created at registration.
// PasswordHash is already hashed, plaintext is never persisted.
type UnverifiedCustomer struct {
	BaseSimple
	Name             string `db:"name"`
	Email            string `db:"email"`
	PasswordHash     string `db:"password_hash"`
	VerificationCode string `db:"verification_code"`
}

type UnverifiedProvider struct {
	BaseSimple
	Name             string   `db:"name"`
	Email            string   `db:"email"`
	PasswordHash     string   `db:"password_hash"`
	ContactNumber    string   `db:"contact_number"`
	City             string   `db:"city"`
	Address          string   `db:"address"`
	Location         GeoPoint `db:"location"`
	ReferralCode     string   `db:"referral_code"`
	VerificationCode string   `db:"verification_code"`
}
