package cpu

import (
	"os"
	"strings"
)

// Kernel identifies a butterfly implementation.
type Kernel uint8

const (
	// Generic is the plain radix-2 butterfly.
	Generic Kernel = iota
	// Unrolled fuses the first two stages into a radix-4 pass.
	Unrolled
)

// String returns the string representation of a Kernel.
func (k Kernel) String() string {
	switch k {
	case Generic:
		return "generic"
	case Unrolled:
		return "unrolled"
	default:
		return "unknown"
	}
}

// ParseKernel parses a string into a Kernel value.
func ParseKernel(s string) (Kernel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "generic":
		return Generic, true
	case "unrolled":
		return Unrolled, true
	default:
		return Generic, false
	}
}

// Set once at init; read-only afterwards.
var (
	activeKernel Kernel
	hasOverride  bool

	// hasWideIssue is set by platform-specific init.
	hasWideIssue bool
)

// initKernel is called from the platform-specific init functions after the
// feature flags are detected.
func initKernel() {
	if override := os.Getenv("TENSORENC_KERNEL"); override != "" {
		if k, ok := ParseKernel(override); ok && Available(k) {
			hasOverride = true
			activeKernel = k
			return
		}
	}

	if hasWideIssue {
		activeKernel = Unrolled
		return
	}
	activeKernel = Generic
}

// Available reports whether k can run on this CPU.
func Available(k Kernel) bool {
	switch k {
	case Generic:
		return true
	case Unrolled:
		return hasWideIssue
	default:
		return false
	}
}

// Active returns the selected kernel.
func Active() Kernel {
	return activeKernel
}

// IsOverridden reports whether TENSORENC_KERNEL selected the kernel.
func IsOverridden() bool {
	return hasOverride
}
