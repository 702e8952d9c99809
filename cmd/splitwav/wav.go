package main

import (
	"encoding/binary"
	"io"
	"math"

	"github.com/cockroachdb/errors"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
)

const (
	wavHeaderSize = 44
	formatFloat   = 3
)

// decodeStereo reads a WAV stream and returns both channels as float64.
// Mono files are duplicated to two channels by the decoder.
func decodeStereo(r io.Reader) ([2][]float64, int, error) {
	stream, err := wav.DecodeF32(r)
	if err != nil {
		return [2][]float64{}, 0, errors.Wrap(err, "decode wav")
	}

	raw, err := io.ReadAll(stream)
	if err != nil {
		return [2][]float64{}, 0, errors.Wrap(err, "read wav samples")
	}

	const frameSize = 8 // two float32 channels
	frames := len(raw) / frameSize
	out := [2][]float64{make([]float64, frames), make([]float64, frames)}
	for i := range frames {
		off := i * frameSize
		out[0][i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[off:])))
		out[1][i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(raw[off+4:])))
	}

	return out, stream.SampleRate(), nil
}

// encodeStereoFloat32 returns a complete 32-bit float WAV file holding the
// interleaved channels.
func encodeStereoFloat32(ch [2][]float64, sampleRate int) []byte {
	const channels = 2

	frames := len(ch[0])
	dataSize := frames * channels * 4
	out := make([]byte, wavHeaderSize+dataSize)

	copy(out[0:], "RIFF")
	binary.LittleEndian.PutUint32(out[4:], uint32(36+dataSize))
	copy(out[8:], "WAVE")
	copy(out[12:], "fmt ")
	binary.LittleEndian.PutUint32(out[16:], 16)
	binary.LittleEndian.PutUint16(out[20:], formatFloat)
	binary.LittleEndian.PutUint16(out[22:], channels)
	binary.LittleEndian.PutUint32(out[24:], uint32(sampleRate))
	binary.LittleEndian.PutUint32(out[28:], uint32(sampleRate*channels*4))
	binary.LittleEndian.PutUint16(out[32:], channels*4)
	binary.LittleEndian.PutUint16(out[34:], 32)
	copy(out[36:], "data")
	binary.LittleEndian.PutUint32(out[40:], uint32(dataSize))

	for i := range frames {
		off := wavHeaderSize + i*channels*4
		binary.LittleEndian.PutUint32(out[off:], math.Float32bits(float32(ch[0][i])))
		binary.LittleEndian.PutUint32(out[off+4:], math.Float32bits(float32(ch[1][i])))
	}

	return out
}
