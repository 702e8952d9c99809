// Package median implements a fixed-window sliding median built from a
// max-heap and a min-heap that share one index array.
package median
