package helpers

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a one-way, salted bcrypt digest from the raw password.
// The cost is fixed so the transform is uniform across records.
func HashPassword(raw string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(raw), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CheckPassword reports whether raw matches the stored bcrypt digest.
// The comparison is constant-time inside bcrypt.
func CheckPassword(hash, raw string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
