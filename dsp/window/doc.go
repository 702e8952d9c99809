// Package window generates cosine-sum analysis windows for STFT framing and
// reports the gains needed to normalize windowed overlap-add.
package window
