//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntToUint32(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := IntToUint32(0)
		assert.NoError(t, err)
		assert.Equal(t, uint32(0), got)
	})

	t.Run("valid max int32", func(t *testing.T) {
		got, err := IntToUint32(math.MaxInt32)
		assert.NoError(t, err)
		assert.Equal(t, uint32(math.MaxInt32), got)
	})

	t.Run("invalid negative", func(t *testing.T) {
		_, err := IntToUint32(-1)
		assert.ErrorIs(t, err, ErrOverflow)
	})

	t.Run("invalid too large", func(t *testing.T) {
		_, err := IntToUint32(math.MaxUint32 + 1)
		assert.ErrorIs(t, err, ErrOverflow)
	})
}

func TestUint64ToInt(t *testing.T) {
	got, err := Uint64ToInt(42)
	assert.NoError(t, err)
	assert.Equal(t, 42, got)

	_, err = Uint64ToInt(math.MaxUint64)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestMulInt(t *testing.T) {
	tests := []struct {
		a, b    int
		want    int
		wantErr bool
	}{
		{0, 5, 0, false},
		{5, 0, 0, false},
		{1000, 8, 8000, false},
		{math.MaxInt, 1, math.MaxInt, false},
		{math.MaxInt/2 + 1, 2, 0, true},
		{-1, 4, 0, true},
	}
	for _, tt := range tests {
		got, err := MulInt(tt.a, tt.b)
		if tt.wantErr {
			assert.ErrorIs(t, err, ErrOverflow, "%d*%d", tt.a, tt.b)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
