// Command irconvolve convolves a WAV file with an impulse response.
//
// Usage:
//
//	irconvolve -ir <impulse.wav> [flags] <input.wav>
//
// The input is streamed through a partitioned convolver in fixed-size
// blocks, so arbitrarily long files are processed with bounded memory.
// Multichannel files are downmixed to mono before convolution and the
// result is written as 16-bit mono PCM.
//
// Examples:
//
//	irconvolve -ir hall.wav guitar.wav
//	irconvolve -ir hall.wav -out wet.wav -block 4096 guitar.wav
//	irconvolve -ir hall.wav -mode time -block 64 guitar.wav
package main

import (
	"flag"
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/cwbudde/algo-convolver/dsp/conv"
)

const defaultBlockSize = 1024

func main() {
	irPath := flag.String("ir", "", "impulse response WAV file (required)")
	outPath := flag.String("out", "out.wav", "output WAV file")
	modeName := flag.String("mode", "freq", "convolution mode: time or freq")
	blockSize := flag.Int("block", defaultBlockSize, "processing block size in samples (power of two for freq mode)")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: irconvolve -ir <impulse.wav> [flags] <input.wav>\n\n")
		fmt.Fprintf(os.Stderr, "Convolves a WAV file with an impulse response.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  irconvolve -ir hall.wav guitar.wav\n")
		fmt.Fprintf(os.Stderr, "  irconvolve -ir hall.wav -out wet.wav -block 4096 guitar.wav\n")
	}
	flag.Parse()

	if *irPath == "" || flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	var mode conv.Mode
	switch *modeName {
	case "time":
		mode = conv.TimeDomain
	case "freq":
		mode = conv.FrequencyDomain
	default:
		fmt.Fprintf(os.Stderr, "error: unknown mode %q (use time or freq)\n", *modeName)
		os.Exit(2)
	}

	if err := run(*irPath, flag.Arg(0), *outPath, mode, *blockSize); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(irPath, inPath, outPath string, mode conv.Mode, blockSize int) error {
	kernel, irRate, err := readMono(irPath)
	if err != nil {
		return fmt.Errorf("read impulse response: %w", err)
	}

	input, inRate, err := readMono(inPath)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	if irRate != inRate {
		return fmt.Errorf("sample rate mismatch: impulse response %d Hz, input %d Hz", irRate, inRate)
	}

	c, err := conv.NewConvolver(kernel, mode, blockSize)
	if err != nil {
		return err
	}

	output := make([]float64, 0, len(input)+c.OutputTailSize())
	in := make([]float64, blockSize)
	out := make([]float64, blockSize)

	for pos := 0; pos < len(input); pos += blockSize {
		n := copy(in, input[pos:])
		clear(in[n:])

		if err := c.ProcessBlockTo(out, in); err != nil {
			return err
		}
		output = append(output, out...)
	}

	tail := make([]float64, c.OutputTailSize())
	n := c.Flush(tail)
	output = append(output, tail[:n]...)

	// Zero-padding the final block shifts part of the decay into the
	// padded region; everything past the true convolution length is
	// silence.
	if want := len(input) + c.OutputTailSize(); len(output) > want {
		output = output[:want]
	}

	if err := writeMono(outPath, output, inRate); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	return nil
}

// readMono decodes a WAV file to float64 samples in [-1, 1), averaging
// channels when the file is not mono.
func readMono(path string) ([]float64, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", path, err)
	}
	if buf.Format == nil || buf.Format.NumChannels < 1 {
		return nil, 0, fmt.Errorf("%s: missing format information", path)
	}

	channels := buf.Format.NumChannels
	frames := len(buf.Data) / channels
	if frames == 0 {
		return nil, 0, fmt.Errorf("%s: no audio data", path)
	}

	scale := float64(int(1) << (buf.SourceBitDepth - 1))
	samples := make([]float64, frames)
	for i := range frames {
		sum := 0.0
		for ch := range channels {
			sum += float64(buf.Data[i*channels+ch])
		}
		samples[i] = sum / (float64(channels) * scale)
	}

	return samples, buf.Format.SampleRate, nil
}

// writeMono writes float64 samples as 16-bit mono PCM, clipping to
// full scale.
func writeMono(path string, samples []float64, sampleRate int) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := wav.NewEncoder(f, sampleRate, 16, 1, 1)

	data := make([]int, len(samples))
	for i, s := range samples {
		v := math.Round(s * 32767)
		if v > 32767 {
			v = 32767
		} else if v < -32768 {
			v = -32768
		}
		data[i] = int(v)
	}

	if err := enc.Write(&audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: 1,
			SampleRate:  sampleRate,
		},
		Data:           data,
		SourceBitDepth: 16,
	}); err != nil {
		return err
	}

	return enc.Close()
}
