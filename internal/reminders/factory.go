package reminders

import (
	"fmt"
	"sync"

	"github.com/medremhq/medrem-api/internal/models"
)

// SenderFactory manages sender instances, one per channel
type SenderFactory struct {
	mu      sync.RWMutex
	senders map[models.ReminderChannel]Sender
}

// NewSenderFactory creates a new sender factory
func NewSenderFactory() *SenderFactory {
	return &SenderFactory{
		senders: make(map[models.ReminderChannel]Sender),
	}
}

// GetSender gets or creates the sender for a channel
func (f *SenderFactory) GetSender(channel models.ReminderChannel) (Sender, error) {
	f.mu.RLock()
	sender, exists := f.senders[channel]
	f.mu.RUnlock()

	if exists {
		return sender, nil
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring write lock
	if sender, exists := f.senders[channel]; exists {
		return sender, nil
	}

	switch channel {
	case models.ChannelEmail, models.ChannelSMS, models.ChannelPush, models.ChannelWhatsApp:
		// All channels are served by the mock sender; there is no real
		// delivery transport in this system.
		sender = NewMockSender(channel)
	default:
		return nil, fmt.Errorf("unsupported reminder channel: %s", channel)
	}

	f.senders[channel] = sender
	return sender, nil
}

// CloseAll closes all senders
func (f *SenderFactory) CloseAll() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	var errs []error
	for channel, sender := range f.senders {
		if err := sender.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close %s sender: %w", channel, err))
		}
		delete(f.senders, channel)
	}

	if len(errs) > 0 {
		return fmt.Errorf("encountered %d errors while closing senders", len(errs))
	}

	return nil
}
