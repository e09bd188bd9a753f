// Package midiconnector opens a MIDI output device and previews a chord by
// sending its notes as a held note cluster, releasing them on the next
// preview or on Close.
package midiconnector

import (
	"fmt"
	"strings"
	"sync"

	"gitlab.com/gomidi/midi/v2"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
)

// midiOut is the narrow slice of drivers.Out this package depends on,
// kept separate so tests can substitute a fake without touching real
// hardware.
type midiOut interface {
	Send([]byte) error
	Close() error
}

// Device is a single opened MIDI output, tracking which notes it
// currently has held so a new preview can cleanly release the old one.
type Device struct {
	mu      sync.Mutex
	name    string
	out     midiOut
	notesOn map[uint8]bool
}

// Open finds and opens the first output device whose name contains
// nameSubstring (case-insensitive), truncated to its first three words to
// match common USB-MIDI device naming.
func Open(nameSubstring string) (*Device, error) {
	name, err := findOutput(nameSubstring)
	if err != nil {
		return nil, err
	}
	out, err := midi.FindOutPort(name)
	if err != nil {
		return nil, fmt.Errorf("find output port %q: %w", name, err)
	}
	if err := out.Open(); err != nil {
		return nil, fmt.Errorf("open output port %q: %w", name, err)
	}
	return &Device{name: name, out: out, notesOn: make(map[uint8]bool)}, nil
}

func findOutput(nameSubstring string) (string, error) {
	names := Outputs()
	words := strings.Fields(nameSubstring)
	if len(words) > 3 {
		words = words[:3]
	}
	truncated := strings.ToLower(strings.Join(words, " "))
	for _, n := range names {
		if strings.Contains(strings.ToLower(n), truncated) {
			return n, nil
		}
	}
	return "", fmt.Errorf("no MIDI output device matching %q", nameSubstring)
}

// Outputs lists available MIDI output device names.
func Outputs() []string {
	var names []string
	for _, out := range midi.GetOutPorts() {
		names = append(names, out.String())
	}
	return names
}

// PreviewChord releases any notes held from a previous preview, then
// sends note-on for every note in notes on channel.
func (d *Device) PreviewChord(channel uint8, notes []uint8, velocity uint8) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for note := range d.notesOn {
		if err := d.out.Send([]byte{0x80 | channel, note, 0}); err != nil {
			return fmt.Errorf("release note %d: %w", note, err)
		}
		delete(d.notesOn, note)
	}
	for _, note := range notes {
		if err := d.out.Send([]byte{0x90 | channel, note, velocity}); err != nil {
			return fmt.Errorf("sound note %d: %w", note, err)
		}
		d.notesOn[note] = true
	}
	return nil
}

// Close releases any held preview notes and closes the output port.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	for note := range d.notesOn {
		d.out.Send([]byte{0x80, note, 0})
	}
	return d.out.Close()
}
