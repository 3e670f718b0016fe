package create_booking

// Request модель запроса на создание бронирования
type Request struct {
	ActorID         int64  // Инициатор (любой из участников)
	FromUserID      int64  // Студент
	ToUserID        int64  // Репетитор
	StartTimestamp  int64  // Начало сессии, epoch миллисекунды UTC
	BookingType     string // "free" или "paid"
	RecurringRuleID *int64 // Правило-источник (только для материализатора)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64  `json:"id"`
	FromUserID      int64  `json:"fromUserId"`
	ToUserID        int64  `json:"toUserId"`
	Timestamp       int64  `json:"timestamp"`
	EndTimestamp    int64  `json:"endTimestamp"`
	DurationMinutes int    `json:"durationMinutes"`
	BookingType     string `json:"bookingType"`
	Status          string `json:"status"`
	LastActionBy    int64  `json:"lastActionByUserId"`
	RecurringRuleID *int64 `json:"recurringRuleId,omitempty"`
	CreatedAt       int64  `json:"createdAt"`
}
