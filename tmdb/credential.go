package tmdb

import (
	"errors"

	"github.com/marquee-cli/marquee/constant"
	"github.com/zalando/go-keyring"
)

const keyringUser = "tmdb-token"

// SetToken persists the bearer token to the system keyring.
func SetToken(token string) error {
	return keyring.Set(constant.Marquee, keyringUser, token)
}

// GetToken retrieves the bearer token from the system keyring.
func GetToken() (string, error) {
	return keyring.Get(constant.Marquee, keyringUser)
}

// DeleteToken removes the bearer token from the system keyring.
func DeleteToken() error {
	err := keyring.Delete(constant.Marquee, keyringUser)
	if errors.Is(err, keyring.ErrNotFound) {
		return nil
	}
	return err
}

// ResolveToken prefers an explicitly configured token and falls back to the keyring.
func ResolveToken(configured string) string {
	if configured != "" {
		return configured
	}

	token, err := GetToken()
	if err != nil {
		return ""
	}
	return token
}
