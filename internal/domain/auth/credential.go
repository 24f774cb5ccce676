package auth

// CredentialHasher hashes and verifies employee passwords.
type CredentialHasher interface {
	Hash(password string) (string, error)
	Verify(hash, password string) bool
}
