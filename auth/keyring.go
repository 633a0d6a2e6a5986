// Package auth persists module client credentials in the system keyring.
package auth

import (
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/soramod/soramod/constant"
	"github.com/zalando/go-keyring"
)

const service = constant.App

// ErrNotFound is returned when no credentials are stored for a module.
var ErrNotFound = keyring.ErrNotFound

// Credentials are the OAuth client credentials of a module.
type Credentials struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Complete reports whether both parts are set.
func (c Credentials) Complete() bool {
	return c.ClientID != "" && c.ClientSecret != ""
}

// Set stores credentials for module, replacing any previous entry.
func Set(module string, credentials Credentials) error {
	if !credentials.Complete() {
		return errors.New("client id and client secret are required")
	}

	data, err := json.Marshal(credentials)
	if err != nil {
		return err
	}

	return keyring.Set(service, module, string(data))
}

// Get returns the credentials stored for module.
func Get(module string) (Credentials, error) {
	data, err := keyring.Get(service, module)
	if err != nil {
		return Credentials{}, err
	}

	var credentials Credentials
	if err := json.Unmarshal([]byte(data), &credentials); err != nil {
		return Credentials{}, fmt.Errorf("corrupted keyring entry for %s: %w", module, err)
	}

	return credentials, nil
}

// Delete removes the credentials stored for module.
func Delete(module string) error {
	return keyring.Delete(service, module)
}
