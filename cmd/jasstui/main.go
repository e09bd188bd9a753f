// Command jasstui is an interactive terminal front end for rank.Suggest:
// type a chord and a key, see the ranked next-chord suggestions with a
// colorized tension bar, and optionally preview one over MIDI.
package main

import (
	"flag"
	"fmt"
	"log"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/schollz/jasstension/internal/collector"
	"github.com/schollz/jasstension/internal/midiconnector"
	"github.com/schollz/jasstension/internal/rank"
	"github.com/schollz/jasstension/internal/tisindex"
)

func main() {
	indexPath := flag.String("index", "", "path to an index archive built by jassindex build")
	midiDevice := flag.String("midi-device", "", "MIDI output device name substring for chord preview; empty disables preview")
	flag.Parse()
	if *indexPath == "" {
		log.Fatal("usage: jasstui -index path/to/index.bin")
	}

	idx, err := tisindex.LoadFile(*indexPath)
	if err != nil {
		log.Fatal(err)
	}

	var preview *midiconnector.Device
	if *midiDevice != "" {
		preview, err = midiconnector.Open(*midiDevice)
		if err != nil {
			log.Fatal(err)
		}
		defer preview.Close()
	}

	p := tea.NewProgram(newModel(idx, preview), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		log.Fatal(err)
	}
}

type suggestModel struct {
	idx      *tisindex.Index
	preview  *midiconnector.Device
	chordIn  textinput.Model
	keyIn    textinput.Model
	focusKey bool
	results  []rank.Candidate
	selected int
	errMsg   string
}

func newModel(idx *tisindex.Index, preview *midiconnector.Device) *suggestModel {
	chordIn := textinput.New()
	chordIn.Placeholder = "chord (e.g. G7)"
	chordIn.Focus()

	keyIn := textinput.New()
	keyIn.Placeholder = "key (e.g. C)"
	keyIn.SetValue("C")

	return &suggestModel{idx: idx, preview: preview, chordIn: chordIn, keyIn: keyIn}
}

func (m *suggestModel) Init() tea.Cmd { return textinput.Blink }

func (m *suggestModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyTab:
			m.focusKey = !m.focusKey
			m.applyFocus()
			return m, nil
		case tea.KeyEnter:
			m.runSuggest()
			return m, nil
		case tea.KeyDown:
			if m.selected < len(m.results)-1 {
				m.selected++
			}
			return m, nil
		case tea.KeyUp:
			if m.selected > 0 {
				m.selected--
			}
			return m, nil
		case tea.KeyRunes:
			if string(msg.Runes) == "p" && m.preview != nil && m.selected < len(m.results) {
				m.playSelected()
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	if m.focusKey {
		m.keyIn, cmd = m.keyIn.Update(msg)
	} else {
		m.chordIn, cmd = m.chordIn.Update(msg)
	}
	return m, cmd
}

func (m *suggestModel) applyFocus() {
	if m.focusKey {
		m.chordIn.Blur()
		m.keyIn.Focus()
	} else {
		m.keyIn.Blur()
		m.chordIn.Focus()
	}
}

func (m *suggestModel) runSuggest() {
	res, err := rank.Suggest(m.idx, rank.Query{
		Chord: strings.TrimSpace(m.chordIn.Value()),
		Key:   strings.TrimSpace(m.keyIn.Value()),
		Top:   10,
		Goal:  "resolve",
	})
	if err != nil {
		m.errMsg = err.Error()
		m.results = nil
		return
	}
	m.errMsg = ""
	m.results = res.Results
	m.selected = 0
}

func (m *suggestModel) playSelected() {
	cand := m.results[m.selected]
	bits := m.idx.ChromaBits[cand.Row]
	notes := collector.ChordMIDINotes(bits, 4)
	if err := m.preview.PreviewChord(0, notes, 96); err != nil {
		m.errMsg = err.Error()
	}
}

var (
	borderStyle = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Bold(true)
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func (m *suggestModel) View() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", labelStyle.Render("chord:"), m.chordIn.View())
	fmt.Fprintf(&b, "%s   %s\n\n", labelStyle.Render("key:"), m.keyIn.View())

	if m.errMsg != "" {
		b.WriteString(errStyle.Render(m.errMsg))
		b.WriteString("\n")
	}

	if len(m.results) > 0 {
		minT, maxT := tensionRange(m.results)
		for i, c := range m.results {
			bar := tensionBar(c.Tension, minT, maxT, 20)
			cursor := "  "
			if i == m.selected {
				cursor = "> "
			}
			fmt.Fprintf(&b, "%s%2d. %-12s %s %.3f\n", cursor, c.Rank, c.Name, bar, c.Tension)
		}
	}

	b.WriteString("\ntab: switch field  enter: suggest  up/down: select  p: preview  esc: quit\n")
	return borderStyle.Render(b.String())
}

func tensionRange(cands []rank.Candidate) (min, max float64) {
	min, max = cands[0].Tension, cands[0].Tension
	for _, c := range cands {
		if c.Tension < min {
			min = c.Tension
		}
		if c.Tension > max {
			max = c.Tension
		}
	}
	return
}

// tensionBar renders a width-wide heat bar: a green-to-red gradient from
// lowest to highest tension among the current results.
func tensionBar(tension, min, max float64, width int) string {
	span := max - min
	frac := 0.0
	if span > 0 {
		frac = (tension - min) / span
	}
	filled := int(frac * float64(width))

	low, _ := colorful.Hex("#2ECC71")
	high, _ := colorful.Hex("#E74C3C")
	c := low.BlendLuv(high, frac)

	profile := termenv.ColorProfile()
	termColor := profile.Color(c.Hex())

	bar := strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
	return termenv.String(bar).Foreground(termColor).String()
}
