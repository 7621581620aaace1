// Package notification delivers out-of-band messages to principals and
// nominees over independent channels.
package notification

import (
	"time"

	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

type Channel string

const (
	ChannelMessage Channel = "message"
	ChannelVoice   Channel = "voice"
)

func (c Channel) String() string { return string(c) }

type Urgency string

const (
	UrgencyNormal Urgency = "normal"
	UrgencyHigh   Urgency = "high"
)

var (
	ErrChannelUnavailable = dErrors.New(dErrors.CodeDependency, "notification channel unavailable")
	ErrUnsupportedChannel = dErrors.New(dErrors.CodeBadRequest, "unsupported notification channel")
)

type Recipient struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Message is the channel-independent notification body. Reference groups
// messages about the same subject and is used as the partition key.
type Message struct {
	Reference string            `json:"reference"`
	Recipient Recipient         `json:"recipient"`
	Subject   string            `json:"subject"`
	Body      string            `json:"body"`
	Payload   map[string]string `json:"payload,omitempty"`
	Urgency   Urgency           `json:"urgency"`
}

// Envelope is what a channel transport receives.
type Envelope struct {
	ID        string    `json:"id"`
	Channel   Channel   `json:"channel"`
	Message   Message   `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

// Outcome is the result of one delivery attempt on one channel.
type Outcome struct {
	Channel   Channel `json:"channel"`
	Delivered bool    `json:"delivered"`
	Error     string  `json:"error,omitempty"`
}
