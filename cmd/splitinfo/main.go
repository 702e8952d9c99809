// Command splitinfo prints latency and crossover properties of the
// splitting strategies.
//
// Usage:
//
//	splitinfo [flags]
//
// Examples:
//
//	splitinfo
//	splitinfo -rates 44100,96000
//	splitinfo -freq 250 -order 4 -response
//	splitinfo -stft
package main

import (
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/filter/biquad"
	"github.com/cwbudde/algo-split/dsp/filter/design"
	"github.com/cwbudde/algo-split/dsp/splitter"
	"github.com/cwbudde/algo-split/dsp/window"
)

var defaultRates = []float64{44100, 48000, 88200, 96000, 176400, 192000}

var defaultPoints = []float64{20, 50, 100, 200, 500, 1000, 2000, 5000, 10000, 20000}

func main() {
	rates := flag.String("rates", "", "comma-separated sample rates (default: common rates)")
	freq := flag.Float64("freq", splitter.DefaultCrossover, "crossover frequency in Hz for -response")
	order := flag.Int("order", splitter.DefaultOrder, "crossover order for -response: 1, 2 or 4")
	rate := flag.Float64("rate", 48000, "sample rate for -response and -stft")
	response := flag.Bool("response", false, "print the low/high crossover magnitude response")
	stft := flag.Bool("stft", false, "print the transient/steady STFT window properties")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: splitinfo [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Prints latency and crossover properties of the split modes.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	list := defaultRates
	if *rates != "" {
		parsed, err := parseRates(*rates)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(2)
		}
		list = parsed
	}

	var err error
	switch {
	case *response:
		if !splitter.ValidOrder(*order) {
			fmt.Fprintf(os.Stderr, "error: order must be 1, 2 or 4: %d\n", *order)
			os.Exit(2)
		}
		err = printResponse(os.Stdout, *freq, *order, *rate, defaultPoints)
	case *stft:
		err = printSTFT(os.Stdout, *rate)
	default:
		err = printLatency(os.Stdout, list)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func parseRates(s string) ([]float64, error) {
	var out []float64
	for _, field := range strings.Split(s, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil || v <= 0 || !core.IsFinite(v) {
			return nil, fmt.Errorf("invalid sample rate %q", field)
		}
		out = append(out, v)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no sample rates in %q", s)
	}

	return out, nil
}

func printLatency(w io.Writer, rates []float64) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Rate [Hz]\tFIR order 1\tFIR order 2\tFIR order 4\tTS FFT\tTS latency\tTS latency [ms]\n")
	fmt.Fprintf(tw, "---------\t-----------\t-----------\t-----------\t------\t----------\t---------------\n")

	for _, sr := range rates {
		ts := splitter.TSLatency(sr)
		fmt.Fprintf(tw, "%.0f\t%d\t%d\t%d\t%d\t%d\t%.2f\n",
			sr,
			splitter.LHFIRLatency(1, sr),
			splitter.LHFIRLatency(2, sr),
			splitter.LHFIRLatency(4, sr),
			splitter.TSFFTSize(sr),
			ts,
			1000*float64(ts)/sr,
		)
	}

	return tw.Flush()
}

// crossoverChain returns the Butterworth prototype whose squared magnitude
// is the low branch of both low/high strategies.
func crossoverChain(freq float64, order int, sampleRate float64) *biquad.Chain {
	return biquad.NewChain(design.ButterworthLowpass(freq, order, sampleRate))
}

func printResponse(w io.Writer, freq float64, order int, sampleRate float64, points []float64) error {
	chain := crossoverChain(freq, order, sampleRate)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Freq [Hz]\tLow [dB]\tHigh [dB]\n")
	fmt.Fprintf(tw, "---------\t--------\t---------\n")

	for _, f := range points {
		if f >= sampleRate/2 {
			continue
		}
		h := chain.Response(f, sampleRate)
		low := real(h)*real(h) + imag(h)*imag(h)
		fmt.Fprintf(tw, "%.0f\t%.2f\t%.2f\n", f, toDB(low), toDB(1-low))
	}

	return tw.Flush()
}

func toDB(v float64) float64 {
	return 20 * math.Log10(math.Max(math.Abs(v), 1e-12))
}

func printSTFT(w io.Writer, sampleRate float64) error {
	size := splitter.TSFFTSize(sampleRate)
	coeffs := window.Generate(window.TypeHann, size, window.WithPeriodic())

	gain, err := window.CoherentGain(coeffs)
	if err != nil {
		return err
	}
	enbw, err := window.EquivalentNoiseBandwidth(coeffs)
	if err != nil {
		return err
	}
	ola, err := window.OverlapAddGain(coeffs, size/4)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "FFT size\t%d\n", size)
	fmt.Fprintf(tw, "Hop\t%d\n", size/4)
	fmt.Fprintf(tw, "Window\t%s (periodic)\n", window.TypeHann)
	fmt.Fprintf(tw, "Coherent gain\t%.6f\n", gain)
	fmt.Fprintf(tw, "ENBW [bins]\t%.4f\n", enbw)
	fmt.Fprintf(tw, "Overlap-add gain\t%.4f\n", ola)
	fmt.Fprintf(tw, "Latency\t%d\n", splitter.TSLatency(sampleRate))

	return tw.Flush()
}
