package domain

import "time"

// PaymentStatus статус платежа
type PaymentStatus string

const (
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusSucceeded  PaymentStatus = "succeeded"
	PaymentStatusFailed     PaymentStatus = "failed"
	PaymentStatusRefunded   PaymentStatus = "refunded"
)

// Payment платеж за платную сессию.
// Переходы статуса платежа транслируются в события бронирования:
// succeeded → confirmed, failed → awaiting_payment,
// refunded → canceled (если бронирование было confirmed)
type Payment struct {
	ID        int64
	BookingID int64

	// ProviderRef идентификатор сессии оплаты на стороне платежного провайдера
	ProviderRef string

	AmountCents int64
	Currency    string
	Status      PaymentStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
