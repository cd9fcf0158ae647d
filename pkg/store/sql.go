package store

import (
	"context"
	"errors"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// credentialApp is the app-level row of the SQL store.
type credentialApp struct {
	Name         string `gorm:"primaryKey;size:255"`
	ClientID     string `gorm:"size:255"`
	ClientSecret string `gorm:"size:255"`
	RedirectURI  string `gorm:"size:1024"`
}

func (credentialApp) TableName() string { return "credential_apps" }

// credentialToken is one token generation; tokens of an app are ordered by ID.
type credentialToken struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	AppName      string `gorm:"size:255;index:idx_credential_tokens_lookup,priority:1"`
	AuthCode     string `gorm:"size:255;index:idx_credential_tokens_lookup,priority:2"`
	Scopes       string `gorm:"size:255"`
	AccessToken  string `gorm:"size:255;index"`
	RefreshToken string `gorm:"size:255"`
	ExpireAt     int64
}

func (credentialToken) TableName() string { return "credential_tokens" }

func (t credentialToken) token() Token {
	return Token{
		AuthCode:     t.AuthCode,
		Scopes:       t.Scopes,
		AccessToken:  t.AccessToken,
		RefreshToken: t.RefreshToken,
		ExpireAt:     t.ExpireAt,
	}
}

// SQLStore keeps credentials in two tables through gorm. Each mutation runs
// in a transaction.
type SQLStore struct {
	dsn string

	mu     sync.RWMutex
	db     *gorm.DB
	owned  bool
	closed bool
}

var _ Store = (*SQLStore)(nil)

// NewSQLiteStore returns a closed store that opens the sqlite database at
// dsn on Open.
func NewSQLiteStore(dsn string) *SQLStore {
	return &SQLStore{dsn: dsn, owned: true, closed: true}
}

// NewSQLStoreWithDB wraps an existing gorm handle; Close leaves it open.
func NewSQLStoreWithDB(db *gorm.DB) *SQLStore {
	return &SQLStore{db: db, closed: true}
}

func (s *SQLStore) Open(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.db == nil {
		db, err := gorm.Open(sqlite.Open(s.dsn), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		if err != nil {
			return newStoreError(DriverSQLite, "open", "", "failed to open database", err)
		}
		s.db = db
	}
	if err := s.db.WithContext(ctx).AutoMigrate(&credentialApp{}, &credentialToken{}); err != nil {
		return newStoreError(DriverSQLite, "open", "", "failed to migrate schema", err)
	}
	s.closed = false
	return nil
}

func (s *SQLStore) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	if !s.owned || s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	s.db = nil
	if err != nil {
		return newStoreError(DriverSQLite, "close", "", "", err)
	}
	if err := sqlDB.Close(); err != nil {
		return newStoreError(DriverSQLite, "close", "", "", err)
	}
	return nil
}

func (s *SQLStore) Closed() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.closed
}

// handle returns the db for ctx, or an error when the store is closed.
func (s *SQLStore) handle(ctx context.Context, op, appName string) (*gorm.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed || s.db == nil {
		return nil, newStoreError(DriverSQLite, op, appName, "", ErrClosed)
	}
	return s.db.WithContext(ctx), nil
}

func (s *SQLStore) Save(ctx context.Context, rec Record) error {
	db, err := s.handle(ctx, "save", rec.AppName)
	if err != nil {
		return err
	}
	if rec.AppName == "" {
		return newStoreError(DriverSQLite, "save", "", "app name is required", nil)
	}
	scopes := normalizeScopes(rec.Scopes)

	err = db.Transaction(func(tx *gorm.DB) error {
		app := credentialApp{
			Name:         rec.AppName,
			ClientID:     rec.ClientID,
			ClientSecret: rec.ClientSecret,
			RedirectURI:  rec.RedirectURI,
		}
		if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(&app).Error; err != nil {
			return err
		}

		var existing credentialToken
		err := tx.Where("app_name = ? AND auth_code = ? AND scopes = ?", rec.AppName, rec.AuthCode, scopes).
			First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			return tx.Create(&credentialToken{
				AppName:      rec.AppName,
				AuthCode:     rec.AuthCode,
				Scopes:       scopes,
				AccessToken:  rec.AccessToken,
				RefreshToken: rec.RefreshToken,
				ExpireAt:     rec.ExpireAt,
			}).Error
		case err != nil:
			return err
		}
		return tx.Model(&existing).Updates(map[string]any{
			"access_token":  rec.AccessToken,
			"refresh_token": rec.RefreshToken,
			"expire_at":     rec.ExpireAt,
		}).Error
	})
	if err != nil {
		return newStoreError(DriverSQLite, "save", rec.AppName, "", err)
	}
	return nil
}

func (s *SQLStore) fetch(ctx context.Context, appName, column, value string) (*Record, error) {
	db, err := s.handle(ctx, "fetch", appName)
	if err != nil {
		return nil, err
	}
	var app credentialApp
	if err := db.First(&app, "name = ?", appName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, newStoreError(DriverSQLite, "fetch", appName, "", err)
	}
	var tok credentialToken
	if err := db.Where("app_name = ? AND "+column+" = ?", appName, value).Order("id").First(&tok).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, newStoreError(DriverSQLite, "fetch", appName, "", err)
	}
	return &Record{
		AppName:      app.Name,
		ClientID:     app.ClientID,
		ClientSecret: app.ClientSecret,
		RedirectURI:  app.RedirectURI,
		Token:        tok.token(),
	}, nil
}

func (s *SQLStore) FetchByAccessToken(ctx context.Context, appName, accessToken string) (*Record, error) {
	return s.fetch(ctx, appName, "access_token", accessToken)
}

func (s *SQLStore) FetchByAuthCode(ctx context.Context, appName, authCode string) (*Record, error) {
	return s.fetch(ctx, appName, "auth_code", authCode)
}

func (s *SQLStore) DeleteToken(ctx context.Context, appName, accessToken string) error {
	const op = "delete_token"
	db, err := s.handle(ctx, op, appName)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var app credentialApp
		if err := tx.First(&app, "name = ?", appName).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return newStoreError(DriverSQLite, op, appName, "unknown application", ErrNotFound)
			}
			return newStoreError(DriverSQLite, op, appName, "", err)
		}
		res := tx.Where("app_name = ? AND access_token = ?", appName, accessToken).Delete(&credentialToken{})
		if res.Error != nil {
			return newStoreError(DriverSQLite, op, appName, "", res.Error)
		}
		if res.RowsAffected == 0 {
			return newStoreError(DriverSQLite, op, appName, "unknown access token", ErrNotFound)
		}
		var remaining int64
		if err := tx.Model(&credentialToken{}).Where("app_name = ?", appName).Count(&remaining).Error; err != nil {
			return newStoreError(DriverSQLite, op, appName, "", err)
		}
		if remaining == 0 {
			if err := tx.Delete(&credentialApp{}, "name = ?", appName).Error; err != nil {
				return newStoreError(DriverSQLite, op, appName, "", err)
			}
		}
		return nil
	})
}

func (s *SQLStore) DeleteAllTokens(ctx context.Context, appName string) error {
	const op = "delete_all_tokens"
	db, err := s.handle(ctx, op, appName)
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&credentialApp{}, "name = ?", appName)
		if res.Error != nil {
			return newStoreError(DriverSQLite, op, appName, "", res.Error)
		}
		if res.RowsAffected == 0 {
			return newStoreError(DriverSQLite, op, appName, "unknown application", ErrNotFound)
		}
		if err := tx.Where("app_name = ?", appName).Delete(&credentialToken{}).Error; err != nil {
			return newStoreError(DriverSQLite, op, appName, "", err)
		}
		return nil
	})
}
