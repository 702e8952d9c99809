// Package stft provides a streaming short-time Fourier transform with a
// per-frame spectrum hook and windowed overlap-add resynthesis.
//
// Frames of [STFT.Size] samples are taken every [STFT.Hop] = Size/4 samples,
// weighted with a periodic Hann window, transformed with algo-fft and handed
// to a [Hook] as the non-negative frequency bins. The modified spectrum is
// mirrored, inverse transformed, windowed again and overlap-added. With an
// identity hook the output equals the input delayed by [STFT.Latency]
// samples.
package stft
