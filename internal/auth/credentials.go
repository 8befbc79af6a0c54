package auth

// CredentialValidator checks a username/password pair and resolves the
// caller's identity. Real credential stores plug in behind this interface.
type CredentialValidator interface {
	Validate(userName, password string) (*Identity, bool)
}

// StaticCredentialValidator accepts any credentials and resolves them to a
// fixed demo identity. It stands in for an external identity provider.
type StaticCredentialValidator struct {
	HomeCity string
}

// Validate resolves the demo identity with the configured home city
func (v *StaticCredentialValidator) Validate(userName, password string) (*Identity, bool) {
	city := v.HomeCity
	if city == "" {
		city = "Paris"
	}
	return &Identity{
		UserID:    1,
		UserName:  userName,
		FirstName: "James",
		LastName:  "Bond",
		City:      city,
	}, true
}
