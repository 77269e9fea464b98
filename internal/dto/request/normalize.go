package request

import "strings"

// Normalizer is implemented by requests whose fields are canonicalised before validation
type Normalizer interface {
	Normalize()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
}

func (r *VerifyEmailRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
	r.VerificationCode = strings.TrimSpace(r.VerificationCode)
}

func (r *LoginRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
}

func (r *CheckEmailRequest) Normalize() {
	r.Email = normalizeEmail(r.Email)
}

func (r *UpdateCustomerRequest) Normalize() {
	if r.Email != nil {
		email := normalizeEmail(*r.Email)
		r.Email = &email
	}
}

func (r *RegisterProviderRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = normalizeEmail(r.Email)
	r.ReferralCode = strings.TrimSpace(r.ReferralCode)
}
