package credential

import (
	"context"
	"os"
	"strings"

	"BreakoutTrader/internal/errors"
)

// Source yields the access token and the account id orders are placed against.
type Source interface {
	Token(ctx context.Context) (string, error)
	ResolveAccountID(ctx context.Context, token string) (string, error)
}

// Secret is the stored credential payload.
type Secret struct {
	AccessToken   string `json:"access_token"`
	AccountNumber string `json:"account_number"`
}

// SecretStore reads the current Secret.
type SecretStore interface {
	Fetch(ctx context.Context) (Secret, error)
}

// AccountResolver maps a plain account number to the id the broker expects.
type AccountResolver interface {
	ResolveAccountID(ctx context.Context, token, accountNumber string) (string, error)
}

// BrokerSource reads the secret for the token and resolves the account number
// it carried through the broker. Token must be called before ResolveAccountID
// on each tick.
type BrokerSource struct {
	Store    SecretStore
	Resolver AccountResolver

	accountNumber string
}

// NewBrokerSource combines a secret store with an account resolver.
func NewBrokerSource(store SecretStore, resolver AccountResolver) *BrokerSource {
	return &BrokerSource{Store: store, Resolver: resolver}
}

func (b *BrokerSource) Token(ctx context.Context) (string, error) {
	s, err := b.Store.Fetch(ctx)
	if err != nil {
		return "", err
	}
	if s.AccessToken == "" {
		return "", errors.New(errors.ErrCodeCredentialUnavailable, "secret has no access_token")
	}
	if s.AccountNumber != "" {
		b.accountNumber = s.AccountNumber
	}
	return s.AccessToken, nil
}

func (b *BrokerSource) ResolveAccountID(ctx context.Context, token string) (string, error) {
	return b.Resolver.ResolveAccountID(ctx, token, b.accountNumber)
}

// StaticResolver uses the account number unchanged.
type StaticResolver struct{}

func (StaticResolver) ResolveAccountID(_ context.Context, _ string, accountNumber string) (string, error) {
	if accountNumber == "" {
		return "", errors.New(errors.ErrCodeAccountUnresolved, "no account number configured")
	}
	return accountNumber, nil
}

// EnvStore reads the secret from environment variables.
type EnvStore struct {
	TokenVar   string
	AccountVar string
	// Lookup defaults to os.LookupEnv.
	Lookup func(string) (string, bool)
}

// NewEnvStore reads SCHWAB_ACCESS_TOKEN and SCHWAB_ACCOUNT_NUMBER.
func NewEnvStore() *EnvStore {
	return &EnvStore{TokenVar: "SCHWAB_ACCESS_TOKEN", AccountVar: "SCHWAB_ACCOUNT_NUMBER", Lookup: os.LookupEnv}
}

func (e *EnvStore) Fetch(_ context.Context) (Secret, error) {
	lookup := e.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	token, _ := lookup(e.TokenVar)
	account, _ := lookup(e.AccountVar)
	token = strings.TrimSpace(token)
	if token == "" {
		return Secret{}, errors.Newf(errors.ErrCodeCredentialUnavailable, "%s is not set", e.TokenVar)
	}
	return Secret{AccessToken: token, AccountNumber: strings.TrimSpace(account)}, nil
}
