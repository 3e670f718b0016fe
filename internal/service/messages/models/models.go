package models

import "github.com/tutorlane/TL-BookingService/internal/domain"

// SendMessageRequest запрос на отправку сообщения в чат бронирования
type SendMessageRequest struct {
	SenderID int64
	Text     string `json:"text"`
}

// MessageResponse сообщение в ответе API
type MessageResponse struct {
	ID        int64   `json:"id"`
	BookingID int64   `json:"bookingId"`
	SenderID  int64   `json:"senderId"`
	Text      string  `json:"text"`
	ReadBy    []int64 `json:"readBy"`
	CreatedAt int64   `json:"createdAt"`
}

// MessageListResponse список сообщений чата
type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Total    int                `json:"total"`
}

// FromDomainMessage конвертирует доменное сообщение в ответ API
func FromDomainMessage(m *domain.Message) *MessageResponse {
	readBy := m.ReadBy
	if readBy == nil {
		readBy = []int64{}
	}
	return &MessageResponse{
		ID:        m.ID,
		BookingID: m.BookingID,
		SenderID:  m.SenderID,
		Text:      m.Text,
		ReadBy:    readBy,
		CreatedAt: m.CreatedAt.UnixMilli(),
	}
}

// FromDomainMessageList конвертирует список доменных сообщений в ответ API
func FromDomainMessageList(msgs []*domain.Message) *MessageListResponse {
	out := make([]*MessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, FromDomainMessage(m))
	}
	return &MessageListResponse{Messages: out, Total: len(out)}
}
