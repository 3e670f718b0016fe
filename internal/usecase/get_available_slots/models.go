package get_available_slots

// Request модель запроса на получение доступных слотов
type Request struct {
	UserID      int64  // Запрашивающий пользователь (для логирования)
	StudentID   int64  // Студент
	TutorID     int64  // Репетитор
	Date        string // Локальный (UK) календарный день, YYYY-MM-DD
	BookingType string // Тип сессии, определяет длительность окна

	// ExcludeBookingID исключает бронирование из занятости
	// (используется при подборе времени для переноса)
	ExcludeBookingID *int64
}

// Response модель ответа со списком слотов на день
type Response struct {
	Date            string     `json:"date"`
	DurationMinutes int        `json:"durationMinutes"`
	Available       []int64    `json:"available"`
	Busy            []BusySlot `json:"busy"`
}

// BusySlot занятый интервал дня с указанием занятой стороны
type BusySlot struct {
	Timestamp       int64  `json:"timestamp"`
	EndTimestamp    int64  `json:"endTimestamp"`
	BusyParty       string `json:"busyParty"`
	RecurringWeekly bool   `json:"recurringWeekly"`
}
