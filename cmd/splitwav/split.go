package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/apex/log"
	"github.com/cockroachdb/errors"

	"github.com/cwbudde/algo-split/dsp/controller"
	"github.com/cwbudde/algo-split/dsp/core"
	"github.com/cwbudde/algo-split/dsp/splitter"
)

type options struct {
	mode        splitter.Mode
	mix         float64
	freq        float64
	order       int
	linearPhase bool
	swap        bool
	blockSize   int

	tsBalance, tsStrength, tsHold, tsSmooth float64
	psBalance, psAttack, psHold, psSmooth   float64
}

func defaultOptions() options {
	return options{
		mode:       splitter.LowHigh,
		freq:       splitter.DefaultCrossover,
		order:      splitter.DefaultOrder,
		blockSize:  512,
		tsBalance:  0.5,
		tsStrength: 0.5,
		tsHold:     0.5,
		tsSmooth:   0.5,
		psBalance:  0.5,
		psAttack:   0.5,
		psHold:     0.5,
		psSmooth:   0.5,
	}
}

func newController(opts options, sampleRate float64) (*controller.Controller, error) {
	c := controller.New(
		controller.WithMode(opts.mode),
		controller.WithProcessorOptions(
			core.WithSampleRate(sampleRate),
			core.WithBlockSize(opts.blockSize),
		),
	)
	if err := c.PrepareDefault(); err != nil {
		return nil, errors.Wrapf(err, "prepare controller at %v Hz", sampleRate)
	}

	c.SetMix(opts.mix)
	c.SetSwapOutputs(opts.swap)
	c.SetLowHighFreq(opts.freq)
	c.SetLowHighOrder(opts.order)
	c.SetLowHighLinearPhase(opts.linearPhase)
	c.SetTransientBalance(opts.tsBalance)
	c.SetTransientStrength(opts.tsStrength)
	c.SetTransientHold(opts.tsHold)
	c.SetTransientSmooth(opts.tsSmooth)
	c.SetPeakBalance(opts.psBalance)
	c.SetPeakAttack(opts.psAttack)
	c.SetPeakHold(opts.psHold)
	c.SetPeakSmooth(opts.psSmooth)

	return c, nil
}

// splitStereo runs in through c and returns both output pairs with the
// processing latency removed, so they line up with in sample for sample.
// ctx is checked once per block.
func splitStereo(ctx context.Context, c *controller.Controller, in [2][]float64, blockSize int) (pair1, pair2 [2][]float64, err error) {
	frames := len(in[0])

	var out [4][]float64
	for i := range out {
		out[i] = make([]float64, 0, frames)
	}

	buf := [4][]float64{}
	for i := range buf {
		buf[i] = make([]float64, blockSize)
	}
	zeros := make([]float64, blockSize)

	latency := -1
	produced := 0
	for pos := 0; produced < frames+max(latency, 0); pos += blockSize {
		if err := ctx.Err(); err != nil {
			return pair1, pair2, errors.Wrapf(err, "split interrupted at frame %d of %d", min(pos, frames), frames)
		}

		n := blockSize
		src := [2][]float64{zeros, zeros}
		if pos < frames {
			n = min(blockSize, frames-pos)
			src = [2][]float64{in[0][pos : pos+n], in[1][pos : pos+n]}
		}

		c.Process(src, [4][]float64{buf[0][:n], buf[1][:n], buf[2][:n], buf[3][:n]}, n)
		// Settings are applied by the first block, so its latency holds.
		if latency < 0 {
			latency = c.LatencySamples()
		}

		for i := range out {
			out[i] = append(out[i], buf[i][:n]...)
		}
		produced += n
	}

	latency = max(latency, 0)
	for i := range out {
		out[i] = out[i][latency : latency+frames]
	}

	return [2][]float64{out[0], out[1]}, [2][]float64{out[2], out[3]}, nil
}

func outputPaths(input, dir string) (string, string) {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if dir == "" {
		dir = filepath.Dir(input)
	}

	return filepath.Join(dir, base+".1.wav"), filepath.Join(dir, base+".2.wav")
}

func splitFile(ctx context.Context, input, outDir string, opts options) error {
	f, err := os.Open(input)
	if err != nil {
		return errors.Wrap(err, "open input")
	}
	defer f.Close()

	in, sampleRate, err := decodeStereo(f)
	if err != nil {
		return errors.Wrapf(err, "read %s", input)
	}

	logger := log.WithFields(log.Fields{
		"file":       input,
		"sampleRate": sampleRate,
		"frames":     len(in[0]),
		"mode":       opts.mode.String(),
	})
	logger.Info("splitting")

	c, err := newController(opts, float64(sampleRate))
	if err != nil {
		return err
	}

	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_ = c.Run(runCtx, func(latency int) {
			logger.WithField("latency", latency).Info("latency changed")
		})
	}()

	pair1, pair2, err := splitStereo(ctx, c, in, opts.blockSize)
	cancel()
	wg.Wait()
	if err != nil {
		return err
	}

	path1, path2 := outputPaths(input, outDir)
	for _, out := range []struct {
		path string
		data [2][]float64
	}{{path1, pair1}, {path2, pair2}} {
		if err := os.WriteFile(out.path, encodeStereoFloat32(out.data, sampleRate), 0o644); err != nil {
			return errors.Wrapf(err, "write %s", out.path)
		}
		logger.WithField("output", out.path).Info("written")
	}

	return nil
}
