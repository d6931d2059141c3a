package ringbuffer

import (
	"math"
	"testing"
)

func TestNewRejectsNonPositiveCapacity(t *testing.T) {
	for _, capacity := range []int{0, -1} {
		if _, err := New[float64](capacity); err == nil {
			t.Errorf("New(%d) succeeded, want error", capacity)
		}
	}
}

func TestPushWrapsAround(t *testing.T) {
	b, err := New[float64](3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	for i := 1; i <= 5; i++ {
		b.Push(float64(i))
	}

	// 4 and 5 overwrote 1 and 2; the ring now holds [4 5 3] with the
	// write index past 5.
	if got := b.Get(0); got != 4 {
		t.Errorf("Get(0) = %v, want 4", got)
	}
	if got := b.Get(2); got != 3 {
		t.Errorf("Get(2) = %v, want 3", got)
	}
	if b.WriteIndex() != 2 {
		t.Errorf("WriteIndex = %d, want 2", b.WriteIndex())
	}
}

func TestPopAdvancesRead(t *testing.T) {
	b, _ := New[float64](4)
	b.Push(1)
	b.Push(2)

	if got := b.Pop(); got != 1 {
		t.Errorf("Pop = %v, want 1", got)
	}
	if got := b.Peek(); got != 2 {
		t.Errorf("Peek = %v, want 2", got)
	}
	if b.ReadIndex() != 1 {
		t.Errorf("ReadIndex = %d, want 1", b.ReadIndex())
	}
}

func TestGetFrac(t *testing.T) {
	b, _ := New[float64](3)
	for i := 1; i <= 3; i++ {
		b.Push(float64(i))
	}

	tests := []struct {
		offset float64
		want   float64
	}{
		{0, 1},
		{0.5, 1.5},
		{1.8, 2.8},
		{2, 3},
	}

	for _, tt := range tests {
		if got := b.GetFrac(tt.offset); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("GetFrac(%v) = %v, want %v", tt.offset, got, tt.want)
		}
	}
}

func TestGetFrac32(t *testing.T) {
	b, _ := New[float32](4)
	b.Push(0)
	b.Push(2)

	if got := b.GetFrac(0.25); math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("GetFrac(0.25) = %v, want 0.5", got)
	}
}

func TestReset(t *testing.T) {
	b, _ := New[float64](3)
	b.Push(1)
	b.Push(2)
	b.Pop()

	b.Reset()

	if b.ReadIndex() != 0 || b.WriteIndex() != 0 {
		t.Errorf("indices after Reset = (%d, %d), want (0, 0)", b.ReadIndex(), b.WriteIndex())
	}
	for i := range b.Cap() {
		if b.Get(i) != 0 {
			t.Errorf("Get(%d) = %v after Reset, want 0", i, b.Get(i))
		}
	}
}

func TestSetIndicesNormalize(t *testing.T) {
	b, _ := New[float64](4)

	b.SetReadIndex(6)
	if b.ReadIndex() != 2 {
		t.Errorf("SetReadIndex(6): ReadIndex = %d, want 2", b.ReadIndex())
	}

	b.SetWriteIndex(-1)
	if b.WriteIndex() != 3 {
		t.Errorf("SetWriteIndex(-1): WriteIndex = %d, want 3", b.WriteIndex())
	}
}
