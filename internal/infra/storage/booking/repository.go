package booking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/pkg/dbmetrics"
	"github.com/tutorlane/TL-BookingService/pkg/psqlbuilder"
)

var bookingColumns = []string{
	"id",
	"from_user_id",
	"to_user_id",
	"starts_at",
	"booking_type",
	"status",
	"last_action_by",
	"recurring_rule_id",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция (через context.Value), использует её —
// создание всегда вызывается внутри сериализуемой транзакции вместе с проверкой
// конфликтов и записью первого события
func (r *Repository) Create(ctx context.Context, b *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"from_user_id",
			"to_user_id",
			"starts_at",
			"booking_type",
			"status",
			"last_action_by",
			"recurring_rule_id",
		).
		Values(
			b.FromUserID,
			b.ToUserID,
			b.StartsAt,
			b.BookingType,
			b.Status,
			b.LastActionBy,
			b.RecurringRuleID,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&b.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time

	return b, nil
}

// GetByID получает бронирование по ID (без истории событий)
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции переходов блокируем строку, чтобы конкурирующий
	// accept/cancel дождался и увидел уже обновленный статус
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	b, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return b, nil
}

// GetByPair получает все бронирования между парой пользователей (в обе стороны).
// Опционально фильтрует по типу. Порядок направления не важен: пара (студент,
// репетитор) ищется по двум зеркальным композитным индексам
func (r *Repository) GetByPair(ctx context.Context, userA, userB int64, bookingType *domain.BookingType) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Or{
			squirrel.And{squirrel.Eq{"from_user_id": userA}, squirrel.Eq{"to_user_id": userB}},
			squirrel.And{squirrel.Eq{"from_user_id": userB}, squirrel.Eq{"to_user_id": userA}},
		}).
		OrderBy("starts_at ASC")

	if bookingType != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_type": *bookingType})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPair - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPair - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetOccupyingByUsers получает все бронирования в слот-занимающих статусах,
// затрагивающие хотя бы одного из пользователей (как студента или репетитора).
// Используется детектором конфликтов; excludeID исключает переносимое бронирование.
// Внутри транзакции добавляет FOR UPDATE — гонка двух пересекающихся созданий
// разрешается сериализацией транзакций
func (r *Repository) GetOccupyingByUsers(ctx context.Context, userA, userB int64, excludeID *int64) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	occupying := make([]string, len(domain.OccupyingStatuses))
	for i, s := range domain.OccupyingStatuses {
		occupying[i] = string(s)
	}

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Or{
			squirrel.Eq{"from_user_id": []int64{userA, userB}},
			squirrel.Eq{"to_user_id": []int64{userA, userB}},
		}).
		Where(squirrel.Eq{"status": occupying}).
		OrderBy("starts_at ASC")

	if excludeID != nil {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"id": *excludeID})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByUsers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetOccupyingByUsers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByUserID получает список бронирований пользователя (в любой роли)
// Опционально фильтрует по статусу
func (r *Repository) GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Or{
			squirrel.Eq{"from_user_id": userID},
			squirrel.Eq{"to_user_id": userID},
		}).
		OrderBy("starts_at DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByUserID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetConfirmedStartedBefore получает подтвержденные бронирования, начавшиеся до deadline
// Используется автозавершением прошедших сессий
func (r *Repository) GetConfirmedStartedBefore(ctx context.Context, deadline time.Time) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusConfirmed}).
		Where(squirrel.Lt{"starts_at": deadline}).
		OrderBy("starts_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedStartedBefore - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetConfirmedStartedBefore - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// UpdateStatus обновляет статус бронирования и указатель последнего действия
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus, lastActionBy int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", status).
		Set("last_action_by", lastActionBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateStatus")
}

// UpdateSchedule переносит бронирование на новое время и обновляет статус
func (r *Repository) UpdateSchedule(ctx context.Context, id int64, startsAt time.Time, status domain.BookingStatus, lastActionBy int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("starts_at", startsAt).
		Set("status", status).
		Set("last_action_by", lastActionBy).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateSchedule - build update query: %v", ErrBuildQuery, err)
	}

	return r.execExpectingRow(ctx, executor, query, args, "UpdateSchedule")
}

// AppendEvent добавляет событие в историю бронирования.
// История append-only: обновления и удаления событий не поддерживаются.
// Вызывается в одной транзакции с изменением статуса
func (r *Repository) AppendEvent(ctx context.Context, event *domain.BookingEvent) (*domain.BookingEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	metadata, err := json.Marshal(event.Metadata)
	if err != nil {
		return nil, fmt.Errorf("%w: AppendEvent - marshal metadata: %v", ErrEncodeMetadata, err)
	}

	query, args, err := psqlbuilder.Insert("booking_events").
		Columns("booking_id", "event_type", "acting_user_id", "metadata").
		Values(event.BookingID, event.Type, event.ActingUserID, metadata).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: AppendEvent - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&event.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: AppendEvent - execute insert: %v", ErrExecQuery, err)
	}

	event.CreatedAt = createdAt.Time
	return event, nil
}

// ListEvents получает историю событий бронирования в порядке добавления
func (r *Repository) ListEvents(ctx context.Context, bookingID int64) ([]domain.BookingEvent, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"event_type",
		"acting_user_id",
		"metadata",
		"created_at",
	).
		From("booking_events").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListEvents - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListEvents - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	events := make([]domain.BookingEvent, 0)
	for rows.Next() {
		var event domain.BookingEvent
		var metadata []byte
		var createdAt sql.NullTime

		if err := rows.Scan(
			&event.ID,
			&event.BookingID,
			&event.Type,
			&event.ActingUserID,
			&metadata,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListEvents - scan row: %v", ErrScanRow, err)
		}

		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &event.Metadata); err != nil {
				return nil, fmt.Errorf("%w: ListEvents - unmarshal metadata: %v", ErrScanRow, err)
			}
		}

		event.CreatedAt = createdAt.Time
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListEvents - rows error: %v", ErrScanRow, err)
	}

	return events, nil
}

func (r *Repository) execExpectingRow(ctx context.Context, executor DBExecutor, query string, args []interface{}, op string) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	var startsAt, createdAt, updatedAt sql.NullTime
	var ruleID sql.NullInt64

	err := row.Scan(
		&b.ID,
		&b.FromUserID,
		&b.ToUserID,
		&startsAt,
		&b.BookingType,
		&b.Status,
		&b.LastActionBy,
		&ruleID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	b.StartsAt = startsAt.Time.UTC()
	b.CreatedAt = createdAt.Time
	b.UpdatedAt = updatedAt.Time
	if ruleID.Valid {
		b.RecurringRuleID = &ruleID.Int64
	}

	return &b, nil
}

func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
