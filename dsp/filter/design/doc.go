// Package design provides the IIR coefficient designers used by the
// crossover splitters.
//
// Second-order sections follow the RBJ cookbook. First-order sections use
// the bilinear transform with prewarped cutoff. Invalid frequencies or
// sample rates return zero coefficients.
package design
