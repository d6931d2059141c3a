package effects

import (
	"fmt"
	"math"
)

// LFO is a wavetable sine oscillator for control-rate modulation. One
// period of the sine is precomputed at construction; Sample walks the
// table one slot per call and wraps.
type LFO struct {
	sampleRate float64
	freqHz     float64

	table []float64
	index int
}

// NewLFO creates a sine LFO at the given frequency. The table holds one
// full period, round(sampleRate/freqHz) samples.
func NewLFO(freqHz, sampleRate float64) (*LFO, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("lfo sample rate must be > 0: %f", sampleRate)
	}

	l := &LFO{sampleRate: sampleRate}
	if err := l.SetFrequency(freqHz); err != nil {
		return nil, err
	}

	return l, nil
}

// SetFrequency retunes the LFO, rebuilding the wavetable and restarting
// the phase.
func (l *LFO) SetFrequency(freqHz float64) error {
	if freqHz <= 0 || math.IsNaN(freqHz) || math.IsInf(freqHz, 0) {
		return fmt.Errorf("lfo frequency must be > 0: %f", freqHz)
	}
	if freqHz > l.sampleRate/2 {
		return fmt.Errorf("lfo frequency must be <= half the sample rate (%f): %f", l.sampleRate/2, freqHz)
	}

	size := int(math.Round(l.sampleRate / freqHz))
	if size < 1 {
		size = 1
	}

	table := make([]float64, size)
	step := 2 * math.Pi * freqHz / l.sampleRate
	for i := range table {
		table[i] = math.Sin(step * float64(i))
	}

	l.freqHz = freqHz
	l.table = table
	l.index = 0
	return nil
}

// Sample returns the current table value and advances the phase.
func (l *LFO) Sample() float64 {
	v := l.table[l.index]
	l.index = (l.index + 1) % len(l.table)
	return v
}

// Reset rewinds the phase to the start of the table.
func (l *LFO) Reset() {
	l.index = 0
}

// Frequency returns the current frequency in Hz.
func (l *LFO) Frequency() float64 { return l.freqHz }

// TableSize returns the wavetable length in samples.
func (l *LFO) TableSize() int { return len(l.table) }
