package shikimori

import (
	"time"

	"github.com/bobmcallan/shiki/pkg/common"
	"github.com/bobmcallan/shiki/pkg/endpoints"
	"github.com/bobmcallan/shiki/pkg/enums"
)

// TokenTTL is how long a freshly issued token pair is treated as valid.
const TokenTTL = 24 * time.Hour

// Config is one OAuth application registration.
type Config struct {
	// AppName keys the credential store and is sent as the User-Agent.
	AppName      string
	ClientID     string
	ClientSecret string
	// RedirectURI defaults to the out-of-band URI.
	RedirectURI string
	// Scopes is space, plus or comma delimited.
	Scopes string
	// AuthCode is the one-time code shown after authorizing the app.
	AuthCode string

	// AccessToken, RefreshToken and TokenExpireAt adopt an existing token
	// pair instead of redeeming an auth code.
	AccessToken   string
	RefreshToken  string
	TokenExpireAt int64

	// APIDomain selects the host, e.g. shikimori.one.
	APIDomain string
}

// Restricted reports whether only an application name was supplied.
func (c Config) Restricted() bool {
	return c.ClientID == "" && c.ClientSecret == "" && c.Scopes == "" &&
		c.AuthCode == "" && c.AccessToken == ""
}

// validate fills defaults and checks required fields.
func (c *Config) validate(ep *endpoints.Endpoints) error {
	if c.AppName == "" {
		return &ConfigError{Field: "app_name"}
	}
	if c.Restricted() {
		return nil
	}
	if c.RedirectURI == "" {
		c.RedirectURI = endpoints.OutOfBandRedirectURI
	}
	switch {
	case c.ClientID == "":
		return &ConfigError{Field: "client_id"}
	case c.ClientSecret == "":
		return &ConfigError{Field: "client_secret"}
	case c.Scopes == "":
		return &ConfigError{Field: "scopes"}
	case c.AuthCode == "" && c.AccessToken == "":
		return &ConfigError{
			Field:            "auth_code",
			AuthorizationURL: ep.AuthorizationURL(c.ClientID, c.RedirectURI, enums.ParseScopes(c.Scopes).List()),
		}
	}
	return nil
}

// ConfigFromCommon maps the file configuration onto a client Config and
// the options it implies.
func ConfigFromCommon(cfg *common.Config) (Config, []Option) {
	c := Config{
		AppName:      cfg.Client.AppName,
		ClientID:     cfg.Client.ClientID,
		ClientSecret: cfg.Client.ClientSecret,
		RedirectURI:  cfg.Client.RedirectURI,
		Scopes:       cfg.Client.Scopes,
		AuthCode:     cfg.Client.AuthCode,
		APIDomain:    cfg.Client.APIDomain,
	}
	opts := []Option{
		WithTimeout(cfg.Client.GetTimeout()),
		WithRateLimit(cfg.RateLimit.PerSecond, cfg.RateLimit.PerMinute),
	}
	if cfg.Client.StrictErrors {
		opts = append(opts, WithStrictErrors())
	}
	return c, opts
}
