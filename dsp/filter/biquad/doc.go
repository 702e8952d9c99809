// Package biquad provides the second-order IIR runtime used to refilter the
// reverse-IIR low branch and to inspect crossover responses.
//
// A [Section] implements Direct Form II Transposed processing for a single
// second-order section defined by [Coefficients]. Sections can be cascaded
// with [Chain]. Coefficient design lives in dsp/filter/design.
package biquad
