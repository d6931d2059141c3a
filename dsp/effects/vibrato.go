package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-convolver/internal/ringbuffer"
)

// Vibrato is a pitch modulation effect. A sine LFO sweeps the tap point
// of a fractional delay line around a center of 1 + width samples, so
// the instantaneous delay stays within [1, 1 + 2*width] and the tap
// never reaches the sample being written.
type Vibrato struct {
	sampleRate   float64
	widthSecs    float64
	widthSamples float64

	line *ringbuffer.Buffer[float64]
	lfo  *LFO
}

// NewVibrato creates a vibrato with the given modulation rate in Hz and
// sweep width in seconds. A width of zero degenerates to a constant
// one-sample delay.
func NewVibrato(modFreqHz, widthSeconds, sampleRate float64) (*Vibrato, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("vibrato sample rate must be > 0: %f", sampleRate)
	}
	if widthSeconds < 0 || math.IsNaN(widthSeconds) || math.IsInf(widthSeconds, 0) {
		return nil, fmt.Errorf("vibrato width must be >= 0 seconds: %f", widthSeconds)
	}

	lfo, err := NewLFO(modFreqHz, sampleRate)
	if err != nil {
		return nil, fmt.Errorf("vibrato lfo: %w", err)
	}

	widthSamples := math.Round(widthSeconds * sampleRate)

	// Capacity 2 + 2*width covers the deepest tap plus the sample
	// being written.
	line, err := ringbuffer.New[float64](2 + 2*int(widthSamples))
	if err != nil {
		return nil, fmt.Errorf("vibrato delay line: %w", err)
	}

	return &Vibrato{
		sampleRate:   sampleRate,
		widthSecs:    widthSeconds,
		widthSamples: widthSamples,
		line:         line,
		lfo:          lfo,
	}, nil
}

// SetFrequency retunes the modulation rate without clearing the delay
// line.
func (v *Vibrato) SetFrequency(modFreqHz float64) error {
	return v.lfo.SetFrequency(modFreqHz)
}

// Reset clears the delay line and rewinds the LFO phase.
func (v *Vibrato) Reset() {
	v.line.Reset()
	v.lfo.Reset()
}

// ProcessSample processes one sample.
func (v *Vibrato) ProcessSample(input float64) float64 {
	v.line.Push(input)
	v.line.Pop()

	delay := 1 + v.widthSamples + v.widthSamples*v.lfo.Sample()

	// The newest sample sits at the end of the line, so larger delays
	// tap closer to the read index.
	offset := float64(v.line.Cap()-1) - delay

	return v.line.GetFrac(offset)
}

// ProcessInPlace applies the vibrato to buf in place.
func (v *Vibrato) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = v.ProcessSample(buf[i])
	}
}

// Frequency returns the modulation rate in Hz.
func (v *Vibrato) Frequency() float64 { return v.lfo.Frequency() }

// Width returns the sweep width in seconds.
func (v *Vibrato) Width() float64 { return v.widthSecs }

// SampleRate returns the sample rate in Hz.
func (v *Vibrato) SampleRate() float64 { return v.sampleRate }
