// Command splitwav splits a stereo WAV file into two complementary stereo
// files.
//
// Usage:
//
//	splitwav [flags] input.wav ...
//
// For every input it writes <name>.1.wav and <name>.2.wav as 32-bit float
// WAV. The outputs are latency compensated and sum to the input.
//
// Examples:
//
//	splitwav -mode lh -freq 250 -order 4 drums.wav
//	splitwav -mode lh -linear -freq 120 bass.wav
//	splitwav -mode ts -ts-strength 0.8 loop.wav
//	splitwav -mode ms -out /tmp/split mix.wav
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"

	"github.com/cwbudde/algo-split/dsp/splitter"
)

func main() {
	opts := defaultOptions()

	mode := flag.String("mode", opts.mode.String(), "split mode: lr, ms, lh, ts, ps, none")
	outDir := flag.String("out", "", "output directory (default: next to the input)")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Float64Var(&opts.mix, "mix", opts.mix, "crossfade between the pairs, 0..0.5")
	flag.BoolVar(&opts.swap, "swap", opts.swap, "exchange the two output pairs")
	flag.IntVar(&opts.blockSize, "block", opts.blockSize, "processing block size in samples")
	flag.Float64Var(&opts.freq, "freq", opts.freq, "low/high crossover frequency in Hz")
	flag.IntVar(&opts.order, "order", opts.order, "low/high crossover order: 1, 2 or 4")
	flag.BoolVar(&opts.linearPhase, "linear", opts.linearPhase, "use the linear-phase low/high crossover")
	flag.Float64Var(&opts.tsBalance, "ts-balance", opts.tsBalance, "transient/steady balance, 0..1")
	flag.Float64Var(&opts.tsStrength, "ts-strength", opts.tsStrength, "transient/steady separation strength, 0..1")
	flag.Float64Var(&opts.tsHold, "ts-hold", opts.tsHold, "transient hold, 0..1")
	flag.Float64Var(&opts.tsSmooth, "ts-smooth", opts.tsSmooth, "transient mask smoothing, 0..1")
	flag.Float64Var(&opts.psBalance, "ps-balance", opts.psBalance, "peak/steady balance, 0..1")
	flag.Float64Var(&opts.psAttack, "ps-attack", opts.psAttack, "peak attack, 0..1")
	flag.Float64Var(&opts.psHold, "ps-hold", opts.psHold, "peak hold, 0..1")
	flag.Float64Var(&opts.psSmooth, "ps-smooth", opts.psSmooth, "peak window smoothing, 0..1")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: splitwav [flags] input.wav ...\n\n")
		fmt.Fprintf(os.Stderr, "Splits stereo WAV files into two complementary stereo files.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	log.SetHandler(cli.Default)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	m, err := splitter.ParseMode(*mode)
	if err != nil {
		log.WithError(err).Fatal("invalid -mode")
	}
	opts.mode = m

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	failed := false
	for _, input := range flag.Args() {
		if err := splitFile(ctx, input, *outDir, opts); err != nil {
			log.WithError(err).WithField("file", input).Error("split failed")
			failed = true
		}
	}
	if failed {
		os.Exit(1)
	}
}
