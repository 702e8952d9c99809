// Package spectrum provides spectrum-domain helpers used around an FFT.
//
// The package does not implement an FFT. It converts complex bins to
// magnitudes with algo-vecmath kernels, applies real-valued masks and smooths
// magnitude frames across frequency with a running median.
package spectrum
