package effects

import (
	"fmt"
	"math"
)

const (
	defaultCombGain     = 0.5
	maxIIRCombFeedback  = 0.99
	minCombDelaySeconds = 1e-6
)

// CombType selects the comb filter topology.
type CombType int

const (
	// CombFIR is a feedforward comb: y[n] = x[n] + gain*x[n-D].
	CombFIR CombType = iota

	// CombIIR is a feedback comb: y[n] = x[n] + gain*y[n-D].
	CombIIR
)

// String returns the comb type name.
func (t CombType) String() string {
	switch t {
	case CombFIR:
		return "FIR"
	case CombIIR:
		return "IIR"
	default:
		return "Unknown"
	}
}

// Comb is a single-channel comb filter with adjustable gain and delay.
// The delay line capacity is fixed at construction via maxDelaySeconds.
type Comb struct {
	typ          CombType
	sampleRate   float64
	maxDelaySecs float64

	gain      float64
	delaySecs float64

	delaySamples int
	buffer       []float64
	write        int
}

// NewComb creates a comb filter whose delay can be set up to
// maxDelaySeconds. The initial delay is maxDelaySeconds and the initial
// gain is 0.5.
func NewComb(typ CombType, maxDelaySeconds, sampleRate float64) (*Comb, error) {
	if typ != CombFIR && typ != CombIIR {
		return nil, fmt.Errorf("comb type must be FIR or IIR: %d", typ)
	}
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("comb sample rate must be > 0: %f", sampleRate)
	}
	if maxDelaySeconds < minCombDelaySeconds || math.IsNaN(maxDelaySeconds) || math.IsInf(maxDelaySeconds, 0) {
		return nil, fmt.Errorf("comb max delay must be >= %g seconds: %f", minCombDelaySeconds, maxDelaySeconds)
	}

	maxSamples := int(math.Round(maxDelaySeconds * sampleRate))
	if maxSamples < 1 {
		maxSamples = 1
	}

	c := &Comb{
		typ:          typ,
		sampleRate:   sampleRate,
		maxDelaySecs: maxDelaySeconds,
		gain:         defaultCombGain,
		buffer:       make([]float64, maxSamples),
	}

	if err := c.SetDelay(maxDelaySeconds); err != nil {
		return nil, err
	}

	return c, nil
}

// SetGain sets the comb gain in [-1, 1]. For the IIR topology the
// magnitude must stay below 0.99 to keep the feedback loop stable.
func (c *Comb) SetGain(gain float64) error {
	if math.IsNaN(gain) || math.IsInf(gain, 0) || gain < -1 || gain > 1 {
		return fmt.Errorf("comb gain must be in [-1, 1]: %f", gain)
	}
	if c.typ == CombIIR && math.Abs(gain) > maxIIRCombFeedback {
		return fmt.Errorf("IIR comb gain magnitude must be <= %g: %f", maxIIRCombFeedback, gain)
	}
	c.gain = gain
	return nil
}

// SetDelay sets the delay in seconds, up to the construction-time maximum.
func (c *Comb) SetDelay(seconds float64) error {
	if seconds < minCombDelaySeconds || seconds > c.maxDelaySecs ||
		math.IsNaN(seconds) || math.IsInf(seconds, 0) {
		return fmt.Errorf("comb delay must be in [%g, %f]: %f", minCombDelaySeconds, c.maxDelaySecs, seconds)
	}

	samples := int(math.Round(seconds * c.sampleRate))
	if samples < 1 {
		samples = 1
	}
	if samples > len(c.buffer) {
		samples = len(c.buffer)
	}

	c.delaySecs = seconds
	c.delaySamples = samples
	return nil
}

// Reset clears the delay line.
func (c *Comb) Reset() {
	clear(c.buffer)
	c.write = 0
}

// ProcessSample processes one sample.
func (c *Comb) ProcessSample(input float64) float64 {
	read := c.write - c.delaySamples
	if read < 0 {
		read += len(c.buffer)
	}
	delayed := c.buffer[read]

	output := input + c.gain*delayed

	// FIR delays the input, IIR feeds back the output.
	if c.typ == CombFIR {
		c.buffer[c.write] = input
	} else {
		c.buffer[c.write] = output
	}

	c.write++
	if c.write >= len(c.buffer) {
		c.write = 0
	}

	return output
}

// ProcessInPlace applies the comb filter to buf in place.
func (c *Comb) ProcessInPlace(buf []float64) {
	for i := range buf {
		buf[i] = c.ProcessSample(buf[i])
	}
}

// Type returns the comb topology.
func (c *Comb) Type() CombType { return c.typ }

// Gain returns the current gain.
func (c *Comb) Gain() float64 { return c.gain }

// Delay returns the current delay in seconds.
func (c *Comb) Delay() float64 { return c.delaySecs }

// SampleRate returns the sample rate in Hz.
func (c *Comb) SampleRate() float64 { return c.sampleRate }
