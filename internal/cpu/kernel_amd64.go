//go:build amd64

package cpu

import xcpu "golang.org/x/sys/cpu"

func init() {
	hasWideIssue = xcpu.X86.HasAVX2
	initKernel()
}
