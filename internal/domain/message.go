package domain

import "time"

// Message сообщение чата, привязанного к бронированию
type Message struct {
	ID        int64
	BookingID int64
	SenderID  int64
	Text      string

	// ReadBy пользователи, отметившие сообщение прочитанным
	ReadBy []int64

	CreatedAt time.Time
}

// IsReadBy returns true if the user already marked the message as read
func (m *Message) IsReadBy(userID int64) bool {
	for _, id := range m.ReadBy {
		if id == userID {
			return true
		}
	}
	return false
}
