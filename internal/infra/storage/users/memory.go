package users

import (
	"context"
	"sync"
)

// Memory хранилище профилей в памяти процесса. Используется, когда
// PostgreSQL выключен в конфигурации; API совпадает с Repository.
type Memory struct {
	mu    sync.Mutex
	items map[int64]*User
}

// NewMemory создает пустое хранилище
func NewMemory() *Memory {
	return &Memory{items: make(map[int64]*User)}
}

// Upsert создает или дополняет профиль; пустые поля не затирают сохранённые
func (m *Memory) Upsert(_ context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	cur, ok := m.items[u.UserID]
	if !ok {
		cur = &User{UserID: u.UserID}
		m.items[u.UserID] = cur
	}

	if u.Username != "" {
		cur.Username = u.Username
	}
	if u.Name != "" {
		cur.Name = u.Name
	}
	if p := NormalizePhone(u.Phone); p != "" {
		cur.Phone = p
	}
	if u.Lang != "" {
		cur.Lang = u.Lang
	}

	return nil
}

// GetByUserID возвращает копию профиля
func (m *Memory) GetByUserID(_ context.Context, userID int64) (*User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u, ok := m.items[userID]
	if !ok {
		return nil, ErrUserNotFound
	}

	cp := *u
	return &cp, nil
}

// SetLang сохраняет выбранный язык
func (m *Memory) SetLang(ctx context.Context, userID int64, lang string) error {
	return m.Upsert(ctx, &User{UserID: userID, Lang: lang})
}
