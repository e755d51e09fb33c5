package telegram

import (
	"context"

	"github.com/mcompany-dev/consult-booking-bot/internal/infra/storage/users"
	"github.com/mcompany-dev/consult-booking-bot/internal/service/approval"
)

// Wizard интерфейс мастера бронирования
type Wizard interface {
	Start(ctx context.Context, requesterID int64, lang string)
	HandleText(ctx context.Context, requesterID int64, text string) bool
	HandleCallback(ctx context.Context, requesterID int64, data string) bool
}

// Approvals интерфейс координатора согласования
type Approvals interface {
	OnOperatorAction(ctx context.Context, data string) (approval.Result, bool)
	AwaitingRetime(requesterID int64) bool
	HandleRetimeReply(ctx context.Context, requesterID int64, text string) bool
}

// ProfileStore интерфейс хранилища профилей
type ProfileStore interface {
	Upsert(ctx context.Context, u *users.User) error
	GetByUserID(ctx context.Context, userID int64) (*users.User, error)
	SetLang(ctx context.Context, userID int64, lang string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Debug(format string, v ...interface{})
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
