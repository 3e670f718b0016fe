package rule

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/tutorlane/TL-BookingService/internal/domain"
	"github.com/tutorlane/TL-BookingService/pkg/dbmetrics"
	"github.com/tutorlane/TL-BookingService/pkg/psqlbuilder"
)

var ruleColumns = []string{
	"id",
	"from_user_id",
	"to_user_id",
	"day_of_week",
	"hour_utc",
	"minute_utc",
	"status",
	"last_booking_created_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с еженедельными правилами
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория правил
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое правило
func (r *Repository) Create(ctx context.Context, rule *domain.RecurringRule) (*domain.RecurringRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("recurring_rules").
		Columns(
			"from_user_id",
			"to_user_id",
			"day_of_week",
			"hour_utc",
			"minute_utc",
			"status",
		).
		Values(
			rule.FromUserID,
			rule.ToUserID,
			int(rule.DayOfWeek),
			rule.HourUTC,
			rule.MinuteUTC,
			rule.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return rule, nil
}

// GetByID получает правило по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.RecurringRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("recurring_rules").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rule, err := scanRule(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan rule: %v", ErrScanRow, err)
	}

	return rule, nil
}

// GetActiveByUsers получает активные правила, затрагивающие хотя бы одного
// из пользователей. Используется детектором конфликтов
func (r *Repository) GetActiveByUsers(ctx context.Context, userA, userB int64) ([]*domain.RecurringRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("recurring_rules").
		Where(squirrel.Eq{"status": domain.RuleStatusActive}).
		Where(squirrel.Or{
			squirrel.Eq{"from_user_id": []int64{userA, userB}},
			squirrel.Eq{"to_user_id": []int64{userA, userB}},
		}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUsers - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByUsers - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// ExistsActiveDuplicate проверяет, есть ли уже активное правило этой пары
// на то же самое (день, час, минута)
func (r *Repository) ExistsActiveDuplicate(ctx context.Context, fromUserID, toUserID int64, day time.Weekday, hourUTC, minuteUTC int) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("recurring_rules").
		Where(squirrel.Eq{
			"from_user_id": fromUserID,
			"to_user_id":   toUserID,
			"day_of_week":  int(day),
			"hour_utc":     hourUTC,
			"minute_utc":   minuteUTC,
			"status":       domain.RuleStatusActive,
		}).
		Limit(1).
		ToSql()

	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveDuplicate - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: ExistsActiveDuplicate - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// ListActive получает все активные правила (для материализатора)
func (r *Repository) ListActive(ctx context.Context) ([]*domain.RecurringRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("recurring_rules").
		Where(squirrel.Eq{"status": domain.RuleStatusActive}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListActive - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanRules(rows)
}

// UpdateStatus обновляет статус правила
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.RuleStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("recurring_rules").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// StampMaterialized устанавливает watermark последней материализации
func (r *Repository) StampMaterialized(ctx context.Context, id int64, at time.Time) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("recurring_rules").
		Set("last_booking_created_at", at).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: StampMaterialized - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: StampMaterialized - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: StampMaterialized - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRule(row rowScanner) (*domain.RecurringRule, error) {
	var rule domain.RecurringRule
	var day int
	var lastCreated, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rule.ID,
		&rule.FromUserID,
		&rule.ToUserID,
		&day,
		&rule.HourUTC,
		&rule.MinuteUTC,
		&rule.Status,
		&lastCreated,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rule.DayOfWeek = time.Weekday(day)
	if lastCreated.Valid {
		t := lastCreated.Time.UTC()
		rule.LastBookingCreatedAt = &t
	}
	rule.CreatedAt = createdAt.Time
	rule.UpdatedAt = updatedAt.Time

	return &rule, nil
}

func scanRules(rows *sql.Rows) ([]*domain.RecurringRule, error) {
	rules := make([]*domain.RecurringRule, 0)

	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanRules - scan row: %v", ErrScanRow, err)
		}
		rules = append(rules, rule)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanRules - rows error: %v", ErrScanRow, err)
	}

	return rules, nil
}
