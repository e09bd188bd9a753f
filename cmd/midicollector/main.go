// Command midicollector opens a MIDI input and emits one chroma JSON line
// per held-note-set change.
package main

import (
	"flag"
	"log"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv"

	"github.com/schollz/jasstension/internal/collector"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	deviceName := flag.String("device", "", "MIDI input device name substring; empty lists devices and exits")
	flag.Parse()

	in, err := openInput(*deviceName)
	if err != nil {
		log.Fatal(err)
	}
	defer in.Close()

	tracker := collector.NewNoteTracker()
	enc := json.NewEncoder(os.Stdout)

	stop, err := midi.ListenTo(in, func(msg midi.Message, timestampms int32) {
		var channel, note, velocity uint8
		switch {
		case msg.GetNoteOn(&channel, &note, &velocity):
			if !tracker.NoteOn(note) {
				return
			}
		case msg.GetNoteOff(&channel, &note, &velocity):
			if !tracker.NoteOff(note) {
				return
			}
		default:
			return
		}
		event := collector.NewChromaEvent(tracker.Bits())
		if err := enc.Encode(event); err != nil {
			log.Printf("midicollector: encode: %v", err)
		}
	})
	if err != nil {
		log.Fatal(err)
	}
	defer stop()

	select {}
}

func openInput(nameSubstring string) (drivers.In, error) {
	ins := midi.GetInPorts()
	if nameSubstring == "" {
		for _, in := range ins {
			log.Printf("available input: %s", in.String())
		}
		os.Exit(0)
	}
	for _, in := range ins {
		if strings.Contains(strings.ToLower(in.String()), strings.ToLower(nameSubstring)) {
			return midi.FindInPort(in.String())
		}
	}
	return nil, errDeviceNotFound(nameSubstring)
}

type errDeviceNotFound string

func (e errDeviceNotFound) Error() string { return "midi device not found: " + string(e) }
