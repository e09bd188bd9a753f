// Package broadcast forwards chord-event JSON lines unchanged to OSC
// subscribers, the output side of the capture/transport glue the tension
// engine never depends on.
package broadcast

import (
	"fmt"
	"log"

	"github.com/hypebeast/go-osc/osc"
)

// Address is the OSC address every forwarded chord event is sent to.
const Address = "/jass/chord"

// Forwarder sends chord-event JSON payloads to a single OSC destination.
type Forwarder struct {
	client *osc.Client
}

// NewForwarder dials an OSC client at host:port. Dialing is lazy in the
// underlying library: no network I/O happens until Send.
func NewForwarder(host string, port int) *Forwarder {
	return &Forwarder{client: osc.NewClient(host, port)}
}

// Send forwards payload (a JSON-encoded chord event line) as the sole
// string argument of an Address message.
func (f *Forwarder) Send(payload string) error {
	msg := osc.NewMessage(Address)
	msg.Append(payload)
	if err := f.client.Send(msg); err != nil {
		return fmt.Errorf("osc send to %s: %w", Address, err)
	}
	return nil
}

// SendLog is Send with teacher-style best-effort logging instead of a
// returned error, for callers streaming many lines where one dropped
// message shouldn't halt the stream.
func (f *Forwarder) SendLog(payload string) {
	if err := f.Send(payload); err != nil {
		log.Printf("broadcast: %v", err)
	}
}
