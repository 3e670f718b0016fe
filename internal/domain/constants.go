package domain

// Session durations (minutes)
const (
	FreeSessionMinutes = 15
	PaidSessionMinutes = 60
)

// Slot generation defaults
const (
	// DefaultSlotStepMinutes шаг генерации кандидатов времени начала
	DefaultSlotStepMinutes = 5

	// Рабочие часы (локальное UK время)
	DefaultWorkingOpenHour  = 8
	DefaultWorkingCloseHour = 20
)

// Join window for the video/whiteboard session issuer
const (
	// JoinEarlyMinutes за сколько минут до начала можно подключиться
	JoinEarlyMinutes = 10
	// JoinLateMinutes сколько минут после начала подключение ещё возможно
	JoinLateMinutes = 60
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// OccupyingStatuses статусы, резервирующие временной слот обеих сторон.
// Используются детектором конфликтов и движком допусков
var OccupyingStatuses = []BookingStatus{
	StatusPending,
	StatusAwaitingReschedule,
	StatusAwaitingPayment,
	StatusProcessingPayment,
	StatusConfirmed,
}

// TerminalStatuses финальные статусы; переходы из них запрещены,
// кроме добавления события возврата платежа
var TerminalStatuses = []BookingStatus{
	StatusCompleted,
	StatusCanceled,
	StatusRejected,
}
