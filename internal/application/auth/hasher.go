package auth

import "golang.org/x/crypto/bcrypt"

// BcryptHasher implementación de Hasher sobre bcrypt (costo por defecto,
// igual que el resto del sistema).
type BcryptHasher struct{}

func (BcryptHasher) Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func (BcryptHasher) Verify(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
