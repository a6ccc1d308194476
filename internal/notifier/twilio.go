package notifier

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"RSIScreener/internal/config"
)

// TwilioChannel sends alerts as SMS via the Twilio Messages API.
type TwilioChannel struct {
	cfg    config.SMSConfig
	apiURL string
	client *http.Client
}

// NewTwilioChannel returns nil when required credentials are missing so the
// caller can skip the channel.
func NewTwilioChannel(cfg config.SMSConfig, proxyURL string) *TwilioChannel {
	if cfg.AccountSID == "" || cfg.AuthToken == "" || cfg.FromNumber == "" || cfg.ToNumber == "" {
		return nil
	}
	return &TwilioChannel{
		cfg:    cfg,
		apiURL: fmt.Sprintf("https://api.twilio.com/2010-04-01/Accounts/%s/Messages.json", cfg.AccountSID),
		client: newHTTPClient(proxyURL),
	}
}

func (t *TwilioChannel) Name() string { return "sms" }

// Send posts the alert as a single SMS. SMS has no subject line, so the
// subject is carried in the message text.
func (t *TwilioChannel) Send(subject, body string) error {
	form := url.Values{}
	form.Set("From", t.cfg.FromNumber)
	form.Set("To", t.cfg.ToNumber)
	form.Set("Body", subject+"\n"+body)

	req, err := http.NewRequest("POST", t.apiURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(t.cfg.AccountSID, t.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio send: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("twilio API error: status %d, body: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
