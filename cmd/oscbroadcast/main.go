// Command oscbroadcast reads chord-event JSON lines from stdin and
// forwards each one unchanged to an OSC subscriber.
package main

import (
	"bufio"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/schollz/jasstension/internal/broadcast"
)

func main() {
	host := flag.String("host", "localhost", "OSC destination host")
	port := flag.Int("port", 57120, "OSC destination port")
	flag.Parse()

	forwarder := broadcast.NewForwarder(*host, *port)

	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		forwarder.SendLog(line)
	}
	if err := scanner.Err(); err != nil {
		log.Fatal(err)
	}
}
