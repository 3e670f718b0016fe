package rules

import (
	"context"
	"time"

	"github.com/tutorlane/TL-BookingService/internal/domain"
)

// RuleRepository интерфейс репозитория еженедельных правил
type RuleRepository interface {
	Create(ctx context.Context, rule *domain.RecurringRule) (*domain.RecurringRule, error)
	GetByID(ctx context.Context, id int64) (*domain.RecurringRule, error)
	ExistsActiveDuplicate(ctx context.Context, fromUserID, toUserID int64, day time.Weekday, hourUTC, minuteUTC int) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status domain.RuleStatus) error
}

// IdentityClient интерфейс клиента identity-сервиса
type IdentityClient interface {
	GetUser(ctx context.Context, userID int64) (*domain.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
