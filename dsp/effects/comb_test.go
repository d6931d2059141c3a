package effects

import (
	"math"
	"testing"
)

func TestNewCombValidation(t *testing.T) {
	tests := []struct {
		name       string
		typ        CombType
		maxDelay   float64
		sampleRate float64
	}{
		{"unknown type", CombType(7), 0.1, 44100},
		{"zero sample rate", CombFIR, 0.1, 0},
		{"negative sample rate", CombFIR, 0.1, -44100},
		{"nan sample rate", CombFIR, 0.1, math.NaN()},
		{"zero max delay", CombFIR, 0, 44100},
		{"inf max delay", CombFIR, math.Inf(1), 44100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewComb(tt.typ, tt.maxDelay, tt.sampleRate); err == nil {
				t.Error("NewComb succeeded, want error")
			}
		})
	}
}

func TestCombSetGainValidation(t *testing.T) {
	fir, err := NewComb(CombFIR, 0.01, 44100)
	if err != nil {
		t.Fatalf("NewComb: %v", err)
	}
	iir, err := NewComb(CombIIR, 0.01, 44100)
	if err != nil {
		t.Fatalf("NewComb: %v", err)
	}

	if err := fir.SetGain(-1); err != nil {
		t.Errorf("FIR SetGain(-1): %v", err)
	}
	if err := fir.SetGain(1.5); err == nil {
		t.Error("FIR SetGain(1.5) succeeded, want error")
	}
	if err := fir.SetGain(math.NaN()); err == nil {
		t.Error("FIR SetGain(NaN) succeeded, want error")
	}

	// The feedback path caps the magnitude below unity.
	if err := iir.SetGain(0.99); err != nil {
		t.Errorf("IIR SetGain(0.99): %v", err)
	}
	if err := iir.SetGain(-1); err == nil {
		t.Error("IIR SetGain(-1) succeeded, want error")
	}
}

func TestCombSetDelayValidation(t *testing.T) {
	c, err := NewComb(CombFIR, 0.1, 44100)
	if err != nil {
		t.Fatalf("NewComb: %v", err)
	}

	if err := c.SetDelay(0.05); err != nil {
		t.Errorf("SetDelay(0.05): %v", err)
	}
	if c.Delay() != 0.05 {
		t.Errorf("Delay = %v, want 0.05", c.Delay())
	}
	if err := c.SetDelay(0.2); err == nil {
		t.Error("SetDelay above max succeeded, want error")
	}
	if err := c.SetDelay(0); err == nil {
		t.Error("SetDelay(0) succeeded, want error")
	}
}

// A sine whose period equals the delay cancels exactly in a
// feedforward comb with gain -1.
func TestFIRCombCancelsMatchedSine(t *testing.T) {
	const (
		sampleRate = 8000.0
		delay      = 0.01 // 80 samples
	)
	delaySamples := int(math.Round(delay * sampleRate))

	c, err := NewComb(CombFIR, delay, sampleRate)
	if err != nil {
		t.Fatalf("NewComb: %v", err)
	}
	if err := c.SetGain(-1); err != nil {
		t.Fatalf("SetGain: %v", err)
	}

	freq := sampleRate / float64(delaySamples)
	for n := range 4 * delaySamples {
		x := math.Sin(2 * math.Pi * freq * float64(n) / sampleRate)
		y := c.ProcessSample(x)

		// Before the delay line fills, the delayed term is zero.
		if n < delaySamples {
			continue
		}
		if math.Abs(y) > 1e-9 {
			t.Fatalf("sample %d: output %v, want ~0", n, y)
		}
	}
}

// An impulse through a feedback comb produces an echo train decaying
// by the gain at each multiple of the delay.
func TestIIRCombEchoTrain(t *testing.T) {
	const (
		sampleRate = 1000.0
		delay      = 0.01 // 10 samples
		gain       = 0.5
	)
	delaySamples := int(math.Round(delay * sampleRate))

	c, err := NewComb(CombIIR, delay, sampleRate)
	if err != nil {
		t.Fatalf("NewComb: %v", err)
	}
	if err := c.SetGain(gain); err != nil {
		t.Fatalf("SetGain: %v", err)
	}

	for n := range 5 * delaySamples {
		x := 0.0
		if n == 0 {
			x = 1.0
		}
		y := c.ProcessSample(x)

		want := 0.0
		if n%delaySamples == 0 {
			want = math.Pow(gain, float64(n/delaySamples))
		}
		if math.Abs(y-want) > 1e-12 {
			t.Fatalf("sample %d: output %v, want %v", n, y, want)
		}
	}
}

func TestCombReset(t *testing.T) {
	c, err := NewComb(CombFIR, 0.005, 1000)
	if err != nil {
		t.Fatalf("NewComb: %v", err)
	}

	c.ProcessSample(1)
	c.Reset()

	// With a cleared delay line the feedforward term contributes nothing.
	for n := range 5 {
		if y := c.ProcessSample(0); y != 0 {
			t.Fatalf("sample %d after Reset: output %v, want 0", n, y)
		}
	}
}

func TestCombProcessInPlace(t *testing.T) {
	a, err := NewComb(CombIIR, 0.004, 1000)
	if err != nil {
		t.Fatalf("NewComb: %v", err)
	}
	b, err := NewComb(CombIIR, 0.004, 1000)
	if err != nil {
		t.Fatalf("NewComb: %v", err)
	}

	input := []float64{1, 0.5, -0.25, 0, 0, 1, -1, 0.125, 0, 0, 0, 0}
	buf := make([]float64, len(input))
	copy(buf, input)
	a.ProcessInPlace(buf)

	for i, x := range input {
		if want := b.ProcessSample(x); buf[i] != want {
			t.Fatalf("sample %d: ProcessInPlace %v, ProcessSample %v", i, buf[i], want)
		}
	}
}
