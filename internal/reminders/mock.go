package reminders

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/medremhq/medrem-api/internal/models"
	"github.com/medremhq/medrem-api/pkg/logger"
)

// MockSender logs deliveries instead of sending them. It remembers what it
// "sent" so tests and dashboards can inspect the outbox.
type MockSender struct {
	channel models.ReminderChannel
	logger  zerolog.Logger

	mu     sync.Mutex
	outbox []SentMessage
}

// SentMessage is one delivery recorded by the mock sender
type SentMessage struct {
	Recipient string
	Message   string
}

// NewMockSender creates a log-only sender for a channel
func NewMockSender(channel models.ReminderChannel) *MockSender {
	return &MockSender{
		channel: channel,
		logger:  logger.Component("reminder." + string(channel)),
	}
}

// Send records and logs the delivery
func (s *MockSender) Send(ctx context.Context, recipient models.User, message string) error {
	s.mu.Lock()
	s.outbox = append(s.outbox, SentMessage{Recipient: recipient.ID, Message: message})
	s.mu.Unlock()

	s.logger.Info().
		Str("recipient", recipient.ID).
		Str("channel", string(s.channel)).
		Str("message", message).
		Msg("Reminder delivered")
	return nil
}

// Channel reports the channel this sender serves
func (s *MockSender) Channel() models.ReminderChannel {
	return s.channel
}

// Outbox returns a copy of the recorded deliveries
func (s *MockSender) Outbox() []SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]SentMessage, len(s.outbox))
	copy(out, s.outbox)
	return out
}

// Close is a no-op for the mock sender
func (s *MockSender) Close() error {
	return nil
}
