// services/notifier.go
package services

import (
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"nmalls-recorrencia/config"
	"nmalls-recorrencia/logger"
)

const (
	CanalWhatsApp = "whatsapp"
	CanalSMS      = "sms"
)

// Notifier delivers one reminder message and returns the provider id.
type Notifier interface {
	Send(canal, to, body string) (string, error)
}

// Destino picks the channel for a phone: WhatsApp for E.164 numbers
// (leading '+'), SMS otherwise.
func Destino(telefone string) (canal, to string) {
	telefone = strings.TrimSpace(telefone)
	if strings.HasPrefix(telefone, "+") {
		return CanalWhatsApp, "whatsapp:" + telefone
	}
	return CanalSMS, telefone
}

// NewNotifier returns a Twilio notifier when credentials are configured
// and a logging no-op otherwise.
func NewNotifier(cfg config.ReminderConfig) Notifier {
	if !cfg.Enabled() {
		logger.Logger.Warn().Msg("Twilio credentials not set, reminders will only be logged")
		return LogNotifier{}
	}
	return NewTwilioNotifier(cfg)
}

type TwilioNotifier struct {
	client       *twilio.RestClient
	from         string
	whatsAppFrom string
}

func NewTwilioNotifier(cfg config.ReminderConfig) *TwilioNotifier {
	return &TwilioNotifier{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: cfg.TwilioAccountSID,
			Password: cfg.TwilioAuthToken,
		}),
		from:         cfg.TwilioPhoneNumber,
		whatsAppFrom: cfg.TwilioWhatsAppNumber,
	}
}

func (n *TwilioNotifier) Send(canal, to, body string) (string, error) {
	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetBody(body)
	if canal == CanalWhatsApp {
		params.SetFrom("whatsapp:" + n.whatsAppFrom)
	} else {
		params.SetFrom(n.from)
	}

	resp, err := n.client.Api.CreateMessage(params)
	if err != nil {
		return "", err
	}
	if resp.Sid == nil {
		return "", nil
	}
	return *resp.Sid, nil
}

// LogNotifier only logs the message it would have sent.
type LogNotifier struct{}

func (LogNotifier) Send(canal, to, body string) (string, error) {
	logger.Logger.Info().
		Str("canal", canal).
		Str("to", to).
		Str("body", body).
		Msg("Reminder not sent (Twilio disabled)")
	return "", nil
}
