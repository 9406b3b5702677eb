package identity

import (
	"net/url"
	"placestats/internal/models"
	"placestats/internal/providers"
	"placestats/internal/structures"
	"strings"

	json "github.com/goccy/go-json"
)

// Provider exposes the identity handed over by the embedding host, if any.
type Provider interface {
	Current() *models.Identity
}

// InitDataProvider reads the user from a Telegram WebApp initData query
// string. The hash is not verified.
type InitDataProvider struct {
	user *models.Identity
}

func NewInitDataProvider(initData string, logger providers.Logger) *InitDataProvider {
	return &InitDataProvider{user: parseInitData(initData, logger)}
}

func NewProvider(conf *structures.Config, logger providers.Logger) Provider {
	return NewInitDataProvider(conf.Identity.InitData, logger)
}

func (p *InitDataProvider) Current() *models.Identity {
	if p.user == nil {
		return nil
	}
	u := *p.user
	return &u
}

func parseInitData(initData string, logger providers.Logger) *models.Identity {
	initData = strings.TrimSpace(initData)
	if initData == "" {
		return nil
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		logger.Debugf(providers.TypeApp, "Ignoring malformed init data: %s", err)
		return nil
	}
	raw := values.Get("user")
	if raw == "" {
		logger.Debugf(providers.TypeApp, "Init data carries no user")
		return nil
	}

	var user models.Identity
	if err = json.Unmarshal([]byte(raw), &user); err != nil {
		logger.Debugf(providers.TypeApp, "Ignoring malformed init data user: %s", err)
		return nil
	}
	if user.ID == 0 {
		return nil
	}
	return &user
}

// StaticProvider always returns the same identity; nil means none.
type StaticProvider struct {
	User *models.Identity
}

func (p StaticProvider) Current() *models.Identity {
	if p.User == nil {
		return nil
	}
	u := *p.User
	return &u
}
