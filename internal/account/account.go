package account

import (
	accountDatamodel "github.com/frahmantamala/naming-registry/internal/core/datamodel/account"
)

// Account is a network identity's claim on a username, with an optional
// custom domain and profile text.
type Account struct {
	NetworkID string  `json:"network_id"`
	Username  string  `json:"username"`
	Domain    *string `json:"domain,omitempty"`
	About     string  `json:"about"`
	Enabled   bool    `json:"enabled"`
}

// AvailabilityStatus classifies a username against a claimant identity.
type AvailabilityStatus string

const (
	StatusAvailable AvailabilityStatus = "AVAILABLE"
	StatusTaken     AvailabilityStatus = "TAKEN"
	StatusOwn       AvailabilityStatus = "OWN"
)

// FindArgs selects an account by exactly one of its unique attributes.
type FindArgs struct {
	Username  string
	Domain    string
	NetworkID string
}

func (a FindArgs) selectorCount() int {
	count := 0
	if a.Username != "" {
		count++
	}
	if a.Domain != "" {
		count++
	}
	if a.NetworkID != "" {
		count++
	}
	return count
}

func ToDataModel(a *Account) *accountDatamodel.Account {
	return &accountDatamodel.Account{
		NetworkID: a.NetworkID,
		Username:  a.Username,
		Domain:    a.Domain,
		About:     a.About,
		Enabled:   a.Enabled,
	}
}

func FromDataModel(a *accountDatamodel.Account) *Account {
	return &Account{
		NetworkID: a.NetworkID,
		Username:  a.Username,
		Domain:    a.Domain,
		About:     a.About,
		Enabled:   a.Enabled,
	}
}
