package cpu

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseKernel(t *testing.T) {
	tests := []struct {
		in   string
		want Kernel
		ok   bool
	}{
		{"generic", Generic, true},
		{" Unrolled ", Unrolled, true},
		{"avx2", Generic, false},
		{"", Generic, false},
	}

	for _, tt := range tests {
		got, ok := ParseKernel(tt.in)
		assert.Equal(t, tt.want, got, tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
	}
}

func TestActiveIsAvailable(t *testing.T) {
	assert.True(t, Available(Active()))
	assert.True(t, Available(Generic))
	assert.False(t, Available(Kernel(42)))
	assert.Equal(t, "unknown", Kernel(42).String())
}

func TestIsOverridden(t *testing.T) {
	k, ok := ParseKernel(os.Getenv("TENSORENC_KERNEL"))
	want := ok && Available(k)

	assert.Equal(t, want, IsOverridden())
	if want {
		assert.Equal(t, k, Active())
	}
}
