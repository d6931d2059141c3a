// Package effects provides fixed-topology delay-based audio effects:
// FIR/IIR comb filtering, a wavetable LFO, and an LFO-modulated vibrato.
//
// All effects are mono, sample-by-sample processors with validated
// parameter setters and a Reset method that clears internal state
// without touching configuration. Process one instance per channel for
// multichannel audio.
package effects
