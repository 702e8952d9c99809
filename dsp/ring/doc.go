// Package ring computes wrap-safe index ranges for ring buffers.
//
// The types in this package never own or copy samples. A producer asks for
// a [Range], copies into its own storage, and commits the write. A consumer
// does the same on the read side. [FIFO] serves one consumer, [Multicast]
// serves many and throttles the producer to the slowest reader.
package ring
