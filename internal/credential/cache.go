package credential

import (
	"context"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"BreakoutTrader/internal/errors"
	"BreakoutTrader/internal/model"
)

// Cache holds the last good token and account id.
type Cache struct {
	source  Source
	logger  *zap.Logger
	token   optional.Option[string]
	account optional.Option[string]
}

// NewCache starts with nothing cached.
func NewCache(source Source, logger *zap.Logger) *Cache {
	return &Cache{
		source:  source,
		logger:  logger,
		token:   optional.None[string](),
		account: optional.None[string](),
	}
}

// Refresh fetches both values once. A failed fetch keeps the previous value;
// it errors only when a value has never been obtained.
func (c *Cache) Refresh(ctx context.Context) (model.Credentials, error) {
	token := Refresh(c.token, func() (string, error) {
		return c.source.Token(ctx)
	})
	if !token.Ok() {
		return model.Credentials{}, errors.Wrap(errors.ErrCodeCredentialUnavailable, "no access token", token.Err)
	}
	c.token = optional.Some(token.Value)
	if token.Status == Stale {
		c.logger.Warn("token refresh failed, reusing previous token", zap.Error(token.Err))
	}

	account := Refresh(c.account, func() (string, error) {
		return c.source.ResolveAccountID(ctx, token.Value)
	})
	if !account.Ok() {
		return model.Credentials{}, errors.Wrap(errors.ErrCodeAccountUnresolved, "no account id", account.Err)
	}
	c.account = optional.Some(account.Value)
	if account.Status == Stale {
		c.logger.Warn("account resolve failed, reusing previous account", zap.Error(account.Err))
	}

	return model.Credentials{AccessToken: token.Value, AccountID: account.Value}, nil
}

// Current returns the cached pair, if both halves were ever obtained.
func (c *Cache) Current() optional.Option[model.Credentials] {
	if c.token.IsNone() || c.account.IsNone() {
		return optional.None[model.Credentials]()
	}
	return optional.Some(model.Credentials{AccessToken: c.token.Unwrap(), AccountID: c.account.Unwrap()})
}
