//go:build arm64

package cpu

import xcpu "golang.org/x/sys/cpu"

func init() {
	hasWideIssue = xcpu.ARM64.HasASIMD
	initKernel()
}
