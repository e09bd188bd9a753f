// Command wavchroma estimates a chroma vector from a WAV file and emits
// one chroma JSON line, standing in for live microphone capture.
package main

import (
	"flag"
	"log"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/schollz/jasstension/internal/collector"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func main() {
	path := flag.String("wav", "", "path to a WAV file")
	flag.Parse()
	if *path == "" {
		log.Fatal("usage: wavchroma -wav path/to/file.wav")
	}

	f, err := os.Open(*path)
	if err != nil {
		log.Fatal(err)
	}
	defer f.Close()

	bits, err := collector.ChromaFromWAV(f)
	if err != nil {
		log.Fatal(err)
	}

	event := collector.NewChromaEvent(bits)
	if err := json.NewEncoder(os.Stdout).Encode(event); err != nil {
		log.Fatal(err)
	}
}
