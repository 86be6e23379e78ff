package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
)

type AccountID string

// Account is one entry of the local account book. InitData is the opaque
// URL-encoded credential blob issued by the host platform; ID and Name are
// extracted from the user record embedded in it.
type Account struct {
	ID       AccountID
	Name     string
	InitData string
	Wallet   string
	Proxy    string
}

type initDataUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
}

// IdentityFromInitData extracts the external account id and display name
// from the embedded user record of an init payload.
func IdentityFromInitData(raw string) (AccountID, string, error) {
	values, err := url.ParseQuery(raw)
	if err != nil {
		return "", "", fmt.Errorf("parse init data: %w", err)
	}

	userJSON := values.Get("user")
	if userJSON == "" {
		return "", "", ErrInitDataMissingUser
	}

	var user initDataUser
	if err := json.Unmarshal([]byte(userJSON), &user); err != nil {
		return "", "", fmt.Errorf("decode init data user: %w", err)
	}
	if user.ID == 0 {
		return "", "", ErrInitDataMissingUser
	}

	return AccountID(strconv.FormatInt(user.ID, 10)), user.FirstName, nil
}
