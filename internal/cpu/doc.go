// Package cpu selects the butterfly kernel used by the Hadamard transform.
//
// Selection happens once at init from CPU feature flags reported by
// golang.org/x/sys/cpu. Set TENSORENC_KERNEL to "generic" or "unrolled" to
// force a kernel; an override naming an unavailable kernel is ignored.
//
// Both kernels are pure Go and produce identical results. The unrolled kernel
// fuses the first two butterfly stages, which pays off on cores with wide
// out-of-order issue.
package cpu
