package auth

import (
	"crypto/rand"
	"fmt"
	"io"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// OTPLength is the number of digits in a verification code.
const OTPLength = 6

// HashPassword returns the bcrypt hash of password
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// otpSpace is 10^OTPLength, the number of distinct codes.
var otpSpace = new(big.Int).Exp(big.NewInt(10), big.NewInt(OTPLength), nil)

// GenerateOTP returns a random numeric code of OTPLength digits, leading zeros allowed.
func GenerateOTP() (string, error) {
	return otpFrom(rand.Reader)
}

func otpFrom(r io.Reader) (string, error) {
	n, err := rand.Int(r, otpSpace)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return fmt.Sprintf("%0*d", OTPLength, n.Int64()), nil
}
