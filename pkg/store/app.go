package store

// The helpers below implement the per-app token list semantics once, so
// every document-oriented backend (memory, file, redis, badger) shares them.

func (a *App) merged(appName string, t Token) *Record {
	return &Record{
		AppName:      appName,
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		RedirectURI:  a.RedirectURI,
		Token:        t,
	}
}

// upsert applies rec to the app, matching tokens on auth code and scopes.
func (a *App) upsert(rec Record) {
	a.ClientID = rec.ClientID
	a.ClientSecret = rec.ClientSecret
	a.RedirectURI = rec.RedirectURI

	tok := rec.Token
	tok.Scopes = normalizeScopes(tok.Scopes)
	for i := range a.Tokens {
		if a.Tokens[i].AuthCode == tok.AuthCode && normalizeScopes(a.Tokens[i].Scopes) == tok.Scopes {
			a.Tokens[i] = tok
			return
		}
	}
	a.Tokens = append(a.Tokens, tok)
}

func (a *App) byAccessToken(accessToken string) (Token, bool) {
	for _, t := range a.Tokens {
		if t.AccessToken == accessToken {
			return t, true
		}
	}
	return Token{}, false
}

func (a *App) byAuthCode(authCode string) (Token, bool) {
	for _, t := range a.Tokens {
		if t.AuthCode == authCode {
			return t, true
		}
	}
	return Token{}, false
}

// removeToken drops the token with accessToken and reports whether it was
// present.
func (a *App) removeToken(accessToken string) bool {
	for i, t := range a.Tokens {
		if t.AccessToken == accessToken {
			a.Tokens = append(a.Tokens[:i], a.Tokens[i+1:]...)
			return true
		}
	}
	return false
}

func (a *App) clone() *App {
	c := *a
	c.Tokens = append([]Token(nil), a.Tokens...)
	return &c
}
