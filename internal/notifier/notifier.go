// Package notifier delivers alert batches to the configured channels.
package notifier

import (
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Channel is a single notification sink.
type Channel interface {
	Name() string
	Send(subject, body string) error
}

// Dispatcher fans an alert batch out to every configured channel. Channel
// failures are logged and never propagated to the monitoring loop.
type Dispatcher struct {
	channels []Channel
}

// NewDispatcher creates a dispatcher over the given channels.
func NewDispatcher(channels ...Channel) *Dispatcher {
	return &Dispatcher{channels: channels}
}

// Channels returns the number of configured sinks.
func (d *Dispatcher) Channels() int { return len(d.channels) }

// Dispatch joins the alert lines into one body and sends it to every
// channel. An empty batch is a no-op.
func (d *Dispatcher) Dispatch(subject string, alerts []string) {
	if len(alerts) == 0 {
		return
	}
	body := strings.Join(alerts, "\n")
	for _, ch := range d.channels {
		if err := ch.Send(subject, body); err != nil {
			log.Printf("[ERROR] %s alert failed: %v", ch.Name(), err)
			continue
		}
		log.Printf("[INFO] %s alert sent", ch.Name())
	}
}

// newHTTPClient builds a client with optional proxy support and a hard
// timeout.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
