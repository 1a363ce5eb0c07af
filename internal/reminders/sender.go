package reminders

import (
	"context"

	"github.com/medremhq/medrem-api/internal/models"
)

// Sender delivers a reminder over one channel
type Sender interface {
	// Send delivers the message to the recipient. Implementations must not
	// mutate the reminder; the service owns status transitions.
	Send(ctx context.Context, recipient models.User, message string) error

	// Channel reports which channel this sender serves
	Channel() models.ReminderChannel

	Close() error
}
