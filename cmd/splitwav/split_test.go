package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/onsi/gomega"

	"github.com/cwbudde/algo-split/dsp/splitter"
	"github.com/cwbudde/algo-split/internal/testutil"
)

// pcm16WAV builds a 16-bit stereo PCM WAV file.
func pcm16WAV(ch [2][]float64, sampleRate int) []byte {
	var buf bytes.Buffer
	frames := len(ch[0])
	dataSize := frames * 4

	buf.WriteString("RIFF")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(36+dataSize))
	buf.WriteString("WAVEfmt ")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(16))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(1))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(2))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	_ = binary.Write(&buf, binary.LittleEndian, uint32(sampleRate*4))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(4))
	_ = binary.Write(&buf, binary.LittleEndian, uint16(16))
	buf.WriteString("data")
	_ = binary.Write(&buf, binary.LittleEndian, uint32(dataSize))
	for i := range frames {
		for c := range 2 {
			_ = binary.Write(&buf, binary.LittleEndian, int16(math.Round(ch[c][i]*32767)))
		}
	}

	return buf.Bytes()
}

func testSignal(frames int) [2][]float64 {
	return [2][]float64{
		testutil.DeterministicNoise(31, 0.5, frames),
		testutil.DeterministicSine(440, 44100, 0.5, frames),
	}
}

func TestEncodeStereoFloat32(t *testing.T) {
	g := gomega.NewWithT(t)

	data := encodeStereoFloat32([2][]float64{{0.25, -1}, {0.5, 1}}, 48000)

	g.Expect(data).To(gomega.HaveLen(wavHeaderSize + 16))
	g.Expect(string(data[0:4])).To(gomega.Equal("RIFF"))
	g.Expect(string(data[8:16])).To(gomega.Equal("WAVEfmt "))
	g.Expect(binary.LittleEndian.Uint16(data[20:])).To(gomega.BeEquivalentTo(formatFloat))
	g.Expect(binary.LittleEndian.Uint16(data[22:])).To(gomega.BeEquivalentTo(2))
	g.Expect(binary.LittleEndian.Uint32(data[24:])).To(gomega.BeEquivalentTo(48000))
	g.Expect(binary.LittleEndian.Uint32(data[40:])).To(gomega.BeEquivalentTo(16))

	sample := func(i int) float32 {
		return math.Float32frombits(binary.LittleEndian.Uint32(data[wavHeaderSize+4*i:]))
	}
	g.Expect([]float32{sample(0), sample(1), sample(2), sample(3)}).To(gomega.Equal([]float32{0.25, 0.5, -1, 1}))
}

func TestDecodeStereo(t *testing.T) {
	g := gomega.NewWithT(t)

	in := testSignal(1000)
	got, rate, err := decodeStereo(bytes.NewReader(pcm16WAV(in, 44100)))

	g.Expect(err).NotTo(gomega.HaveOccurred())
	g.Expect(rate).To(gomega.Equal(44100))
	g.Expect(got[0]).To(gomega.HaveLen(1000))
	for c := range 2 {
		for i := range in[c] {
			g.Expect(got[c][i]).To(gomega.BeNumerically("~", in[c][i], 2.0/32768))
		}
	}
}

func TestDecodeStereoRejectsGarbage(t *testing.T) {
	g := gomega.NewWithT(t)

	_, _, err := decodeStereo(bytes.NewReader([]byte("not a wav file at all")))
	g.Expect(err).To(gomega.HaveOccurred())
	g.Expect(err.Error()).To(gomega.ContainSubstring("decode wav"))
}

func TestSplitStereoReconstructs(t *testing.T) {
	modes := []struct {
		mode   splitter.Mode
		linear bool
	}{
		{splitter.LeftRight, false},
		{splitter.MidSide, false},
		{splitter.LowHigh, true},
		{splitter.TransientSteady, false},
		{splitter.PeakSteady, false},
	}

	in := testSignal(10000)
	for _, m := range modes {
		t.Run(m.mode.String(), func(t *testing.T) {
			g := gomega.NewWithT(t)

			opts := defaultOptions()
			opts.mode = m.mode
			opts.linearPhase = m.linear
			opts.blockSize = 300

			c, err := newController(opts, 44100)
			g.Expect(err).NotTo(gomega.HaveOccurred())

			pair1, pair2, err := splitStereo(context.Background(), c, in, opts.blockSize)
			g.Expect(err).NotTo(gomega.HaveOccurred())
			for ch := range 2 {
				g.Expect(pair1[ch]).To(gomega.HaveLen(len(in[ch])))
				diff, err := testutil.MaxAbsDiff(testutil.Sum(pair1[ch], pair2[ch]), in[ch])
				g.Expect(err).NotTo(gomega.HaveOccurred())
				g.Expect(diff).To(gomega.BeNumerically("<", 1e-9))
			}
		})
	}
}

func TestSplitStereoStopsOnCancel(t *testing.T) {
	g := gomega.NewWithT(t)

	opts := defaultOptions()
	c, err := newController(opts, 44100)
	g.Expect(err).NotTo(gomega.HaveOccurred())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err = splitStereo(ctx, c, testSignal(10000), opts.blockSize)
	g.Expect(err).To(gomega.HaveOccurred())
	g.Expect(errors.Is(err, context.Canceled)).To(gomega.BeTrue())
	g.Expect(err.Error()).To(gomega.ContainSubstring("split interrupted at frame 0"))
}

func TestSplitFileHonorsCancel(t *testing.T) {
	g := gomega.NewWithT(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "tone.wav")
	g.Expect(os.WriteFile(input, pcm16WAV(testSignal(4410), 44100), 0o644)).To(gomega.Succeed())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := splitFile(ctx, input, "", defaultOptions())
	g.Expect(errors.Is(err, context.Canceled)).To(gomega.BeTrue())
	_, statErr := os.Stat(filepath.Join(dir, "tone.1.wav"))
	g.Expect(os.IsNotExist(statErr)).To(gomega.BeTrue())
}

func TestOutputPaths(t *testing.T) {
	g := gomega.NewWithT(t)

	p1, p2 := outputPaths(filepath.Join("in", "song.wav"), "")
	g.Expect(p1).To(gomega.Equal(filepath.Join("in", "song.1.wav")))
	g.Expect(p2).To(gomega.Equal(filepath.Join("in", "song.2.wav")))

	p1, _ = outputPaths("song.wav", "out")
	g.Expect(p1).To(gomega.Equal(filepath.Join("out", "song.1.wav")))
}

func TestSplitFile(t *testing.T) {
	g := gomega.NewWithT(t)

	dir := t.TempDir()
	input := filepath.Join(dir, "tone.wav")
	g.Expect(os.WriteFile(input, pcm16WAV(testSignal(4410), 44100), 0o644)).To(gomega.Succeed())

	opts := defaultOptions()
	opts.mode = splitter.LowHigh
	opts.linearPhase = true
	g.Expect(splitFile(context.Background(), input, "", opts)).To(gomega.Succeed())

	for _, name := range []string{"tone.1.wav", "tone.2.wav"} {
		info, err := os.Stat(filepath.Join(dir, name))
		g.Expect(err).NotTo(gomega.HaveOccurred())
		g.Expect(info.Size()).To(gomega.BeEquivalentTo(wavHeaderSize + 4410*8))
	}

	err := splitFile(context.Background(), filepath.Join(dir, "missing.wav"), "", opts)
	g.Expect(err).To(gomega.MatchError(gomega.ContainSubstring("open input")))
}
