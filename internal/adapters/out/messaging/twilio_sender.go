// Package messaging implements ports.MessageSender with Twilio Programmable
// SMS, plus a sender that only logs for local development.
package messaging

import (
	"context"
	"errors"
	"fmt"

	"dispatch/internal/core/ports"
	"dispatch/internal/metrics"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// messageCreator is the part of the Twilio REST client the sender uses.
type messageCreator interface {
	CreateMessage(params *twilioapi.CreateMessageParams) (*twilioapi.ApiV2010Message, error)
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

func (c TwilioConfig) Validate() error {
	var err error
	if c.AccountSID == "" {
		err = errors.Join(err, errors.New("twilio account sid is empty"))
	}
	if c.AuthToken == "" {
		err = errors.Join(err, errors.New("twilio auth token is empty"))
	}
	if c.FromNumber == "" {
		err = errors.Join(err, errors.New("twilio from number is empty"))
	}
	return err
}

type TwilioSender struct {
	api  messageCreator
	from string
}

var _ ports.MessageSender = (*TwilioSender)(nil)

func NewTwilioSender(cfg TwilioConfig) (*TwilioSender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.AccountSID,
		Password: cfg.AuthToken,
	})
	return newTwilioSender(client.Api, cfg.FromNumber), nil
}

func newTwilioSender(api messageCreator, from string) *TwilioSender {
	return &TwilioSender{api: api, from: from}
}

// Send returns the Twilio message SID. The Twilio client takes no context,
// so cancellation is only honoured before the request is made.
func (s *TwilioSender) Send(ctx context.Context, to string, body string) (string, error) {
	if to == "" {
		return "", errors.New("send sms: recipient is empty")
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	params := &twilioapi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	msg, err := s.api.CreateMessage(params)
	if err != nil {
		metrics.MessagesSent.WithLabelValues("error").Inc()
		return "", fmt.Errorf("send sms to %s: %w", to, err)
	}

	metrics.MessagesSent.WithLabelValues("ok").Inc()
	if msg == nil || msg.Sid == nil {
		return "", nil
	}
	return *msg.Sid, nil
}
