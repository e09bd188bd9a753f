package collector

import (
	"fmt"
	"io"
	"math"

	"github.com/go-audio/wav"
	"github.com/schollz/jasstension/internal/chroma"
)

// equalTemperedRatios are the 12 pitch-class frequency ratios relative to
// the reference pitch class, spanning one octave.
var equalTemperedRatios [chroma.Len]float64

func init() {
	for i := range equalTemperedRatios {
		equalTemperedRatios[i] = math.Pow(2, float64(i)/float64(chroma.Len))
	}
}

// ChromaFromWAV folds a short-time energy estimate per pitch class into a
// thresholded 0/1 chroma vector, using a per-pitch-class Goertzel detector
// across a few octaves around middle C. This is a file-based stand-in for
// live microphone capture: the engine never depends on how chroma arrived.
func ChromaFromWAV(r io.Reader) (chroma.Bits, error) {
	d := wav.NewDecoder(r)
	if !d.IsValidFile() {
		return chroma.Bits{}, fmt.Errorf("invalid WAV file")
	}
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return chroma.Bits{}, fmt.Errorf("decode PCM: %w", err)
	}
	if buf.Format == nil || buf.Format.SampleRate == 0 || len(buf.Data) == 0 {
		return chroma.Bits{}, fmt.Errorf("empty or malformed WAV data")
	}

	sampleRate := float64(buf.Format.SampleRate)
	samples := make([]float64, len(buf.Data))
	for i, v := range buf.Data {
		samples[i] = float64(v)
	}

	const referenceHz = 261.6256 // middle C
	const octaves = 3
	energies := make([]float64, chroma.Len)
	for pc := 0; pc < chroma.Len; pc++ {
		var sum float64
		for octave := -1; octave <= octaves-2; octave++ {
			freq := referenceHz * equalTemperedRatios[pc] * math.Pow(2, float64(octave))
			if freq <= 0 || freq >= sampleRate/2 {
				continue
			}
			sum += goertzelPower(samples, sampleRate, freq)
		}
		energies[pc] = sum
	}

	return thresholdChroma(energies), nil
}

// goertzelPower estimates the signal power at freq Hz via the Goertzel
// algorithm, equivalent to a single-bin DFT magnitude-squared.
func goertzelPower(samples []float64, sampleRate, freq float64) float64 {
	n := len(samples)
	if n == 0 {
		return 0
	}
	w := 2 * math.Pi * freq / sampleRate
	coeff := 2 * math.Cos(w)
	var s0, s1, s2 float64
	for _, x := range samples {
		s0 = x + coeff*s1 - s2
		s2 = s1
		s1 = s0
	}
	real := s1 - s2*math.Cos(w)
	imag := s2 * math.Sin(w)
	return (real*real + imag*imag) / float64(n)
}

// thresholdChroma keeps pitch classes whose energy is at least half the
// peak energy, matching the paper's coarse chroma-binarization approach.
func thresholdChroma(energies []float64) chroma.Bits {
	var bits chroma.Bits
	peak := 0.0
	for _, e := range energies {
		if e > peak {
			peak = e
		}
	}
	if peak <= 0 {
		return bits
	}
	for i, e := range energies {
		if e >= 0.5*peak {
			bits[i] = 1
		}
	}
	return bits
}
