package message

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/pkg/dbmetrics"
	"github.com/tutorlane/TL-BookingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы с сообщениями чата бронирования
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория сообщений
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create добавляет сообщение в чат бронирования
// Отправитель сразу помечается прочитавшим собственное сообщение
func (r *Repository) Create(ctx context.Context, m *domain.Message) (*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	readBy := m.ReadBy
	if readBy == nil {
		readBy = []int64{m.SenderID}
	}

	query, args, err := psqlbuilder.Insert("messages").
		Columns("booking_id", "sender_id", "text", "read_by").
		Values(m.BookingID, m.SenderID, m.Text, pq.Array(readBy)).
		Suffix("RETURNING id, created_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&m.ID, &createdAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	m.ReadBy = readBy
	m.CreatedAt = createdAt.Time

	return m, nil
}

// ListByBookingID получает все сообщения бронирования в хронологическом порядке
func (r *Repository) ListByBookingID(ctx context.Context, bookingID int64) ([]*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"sender_id",
		"text",
		"read_by",
		"created_at",
	).
		From("messages").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	messages := make([]*domain.Message, 0)
	for rows.Next() {
		var m domain.Message
		var createdAt sql.NullTime

		if err := rows.Scan(
			&m.ID,
			&m.BookingID,
			&m.SenderID,
			&m.Text,
			pq.Array(&m.ReadBy),
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("%w: ListByBookingID - scan row: %v", ErrScanRow, err)
		}

		m.CreatedAt = createdAt.Time
		messages = append(messages, &m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBookingID - rows error: %v", ErrScanRow, err)
	}

	return messages, nil
}

// GetByID получает сообщение по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Message, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"booking_id",
		"sender_id",
		"text",
		"read_by",
		"created_at",
	).
		From("messages").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var m domain.Message
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&m.ID,
		&m.BookingID,
		&m.SenderID,
		&m.Text,
		pq.Array(&m.ReadBy),
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrMessageNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan message: %v", ErrScanRow, err)
	}

	m.CreatedAt = createdAt.Time
	return &m, nil
}

// MarkRead добавляет пользователя в множество прочитавших сообщение
// Повторная отметка не дублирует запись
func (r *Repository) MarkRead(ctx context.Context, messageID, userID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("messages").
		Set("read_by", squirrel.Expr("array_append(read_by, ?)", userID)).
		Where(squirrel.Eq{"id": messageID}).
		Where(squirrel.Expr("NOT (? = ANY(read_by))", userID)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: MarkRead - build update query: %v", ErrBuildQuery, err)
	}

	// rowsAffected = 0 означает либо отсутствие сообщения, либо уже
	// проставленную отметку; различаем отдельным запросом
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MarkRead - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MarkRead - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, messageID); err != nil {
			return err
		}
	}

	return nil
}
