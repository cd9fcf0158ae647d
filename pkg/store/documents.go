package store

import "context"

// documents is implemented by backends that keep one serialised App per
// application name. The Store operations are written once against it.
type documents interface {
	Closed() bool
	backend() string
	// get returns nil when the app is unknown.
	get(ctx context.Context, appName string) (*App, error)
	// update runs fn on the current app (nil when unknown) and persists the
	// result. A nil result deletes the app. Errors from fn are returned as-is.
	update(ctx context.Context, appName string, fn func(*App) (*App, error)) error
}

func saveDoc(ctx context.Context, d documents, rec Record) error {
	if d.Closed() {
		return newStoreError(d.backend(), "save", rec.AppName, "", ErrClosed)
	}
	if rec.AppName == "" {
		return newStoreError(d.backend(), "save", "", "app name is required", nil)
	}
	return d.update(ctx, rec.AppName, func(app *App) (*App, error) {
		if app == nil {
			app = &App{}
		}
		app.upsert(rec)
		return app, nil
	})
}

func fetchDoc(ctx context.Context, d documents, appName string, match func(*App) (Token, bool)) (*Record, error) {
	if d.Closed() {
		return nil, newStoreError(d.backend(), "fetch", appName, "", ErrClosed)
	}
	app, err := d.get(ctx, appName)
	if err != nil || app == nil {
		return nil, err
	}
	tok, ok := match(app)
	if !ok {
		return nil, nil
	}
	return app.merged(appName, tok), nil
}

func fetchDocByAccessToken(ctx context.Context, d documents, appName, accessToken string) (*Record, error) {
	return fetchDoc(ctx, d, appName, func(a *App) (Token, bool) { return a.byAccessToken(accessToken) })
}

func fetchDocByAuthCode(ctx context.Context, d documents, appName, authCode string) (*Record, error) {
	return fetchDoc(ctx, d, appName, func(a *App) (Token, bool) { return a.byAuthCode(authCode) })
}

func deleteDocToken(ctx context.Context, d documents, appName, accessToken string) error {
	const op = "delete_token"
	if d.Closed() {
		return newStoreError(d.backend(), op, appName, "", ErrClosed)
	}
	return d.update(ctx, appName, func(app *App) (*App, error) {
		if app == nil {
			return nil, newStoreError(d.backend(), op, appName, "unknown application", ErrNotFound)
		}
		if !app.removeToken(accessToken) {
			return nil, newStoreError(d.backend(), op, appName, "unknown access token", ErrNotFound)
		}
		if len(app.Tokens) == 0 {
			return nil, nil
		}
		return app, nil
	})
}

func deleteDocApp(ctx context.Context, d documents, appName string) error {
	const op = "delete_all_tokens"
	if d.Closed() {
		return newStoreError(d.backend(), op, appName, "", ErrClosed)
	}
	return d.update(ctx, appName, func(app *App) (*App, error) {
		if app == nil {
			return nil, newStoreError(d.backend(), op, appName, "unknown application", ErrNotFound)
		}
		return nil, nil
	})
}
