package users

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Repository хранилище профилей в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает репозиторий профилей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создает или обновляет профиль. Пустые поля не затирают уже
// сохранённые значения.
func (r *Repository) Upsert(ctx context.Context, u *User) error {
	query, args, err := psql.Insert("users").
		Columns("user_id", "username", "name", "phone", "lang").
		Values(u.UserID, u.Username, u.Name, NormalizePhone(u.Phone), u.Lang).
		Suffix(`ON CONFLICT (user_id) DO UPDATE SET
			username  = COALESCE(NULLIF(EXCLUDED.username, ''), users.username),
			name      = COALESCE(NULLIF(EXCLUDED.name, ''), users.name),
			phone     = COALESCE(NULLIF(EXCLUDED.phone, ''), users.phone),
			lang      = COALESCE(NULLIF(EXCLUDED.lang, ''), users.lang),
			last_seen = NOW()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// GetByUserID возвращает профиль по telegram user id
func (r *Repository) GetByUserID(ctx context.Context, userID int64) (*User, error) {
	query, args, err := psql.Select("user_id", "username", "name", "phone", "lang").
		From("users").
		Where(squirrel.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	var u User
	var username, name, phone, lang sql.NullString

	err = r.db.QueryRowContext(ctx, query, args...).Scan(&u.UserID, &username, &name, &phone, &lang)
	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - scan user: %v", ErrScanRow, err)
	}

	u.Username = username.String
	u.Name = name.String
	u.Phone = phone.String
	u.Lang = lang.String

	return &u, nil
}

// SetLang сохраняет выбранный язык
func (r *Repository) SetLang(ctx context.Context, userID int64, lang string) error {
	return r.Upsert(ctx, &User{UserID: userID, Lang: lang})
}

// Migrate создает таблицу профилей, если её нет. Вызывается один раз на
// старте; отдельного инструмента миграций у бота нет.
func (r *Repository) Migrate(ctx context.Context) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS users (
			id         BIGSERIAL PRIMARY KEY,
			user_id    BIGINT UNIQUE NOT NULL,
			username   TEXT,
			name       TEXT,
			phone      TEXT,
			lang       TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			last_seen  TIMESTAMPTZ
		);
		CREATE INDEX IF NOT EXISTS idx_users_user_id ON users(user_id);`

	if _, err := r.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("%w: Migrate - create users table: %v", ErrExecQuery, err)
	}
	return nil
}
