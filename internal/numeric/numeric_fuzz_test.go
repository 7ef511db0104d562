package numeric

import (
	"errors"
	"testing"
	"unicode/utf8"
)

// FuzzFibonacciIterative verifies the checked domain and the recurrence for
// arbitrary indices.
func FuzzFibonacciIterative(f *testing.F) {
	for _, n := range []uint64{0, 1, 2, 10, 50, 92, 93, 94, 1 << 63} {
		f.Add(n)
	}

	f.Fuzz(func(t *testing.T, n uint64) {
		got, err := FibonacciIterative(n)
		if n > MaxIndex {
			if !errors.Is(err, ErrOverflow) {
				t.Fatalf("F(%d): error = %v, want ErrOverflow", n, err)
			}
			return
		}
		if err != nil {
			t.Fatalf("F(%d): unexpected error %v", n, err)
		}
		if n >= 2 {
			a, _ := FibonacciIterative(n - 1)
			b, _ := FibonacciIterative(n - 2)
			if got != a+b {
				t.Errorf("F(%d) = %d, but F(n-1)+F(n-2) = %d", n, got, a+b)
			}
		}
	})
}

// FuzzStringLength compares StringLength with an independent decode loop.
func FuzzStringLength(f *testing.F) {
	for _, s := range []string{"", "Envelope", "🦀", "é", "\xff", "日本語"} {
		f.Add(s)
	}

	f.Fuzz(func(t *testing.T, s string) {
		count := 0
		for i := 0; i < len(s); {
			_, size := utf8.DecodeRuneInString(s[i:])
			i += size
			count++
		}
		if got := StringLength(s); got != count {
			t.Errorf("StringLength(%q) = %d, decode loop counted %d", s, got, count)
		}
	})
}

func FuzzIsEven(f *testing.F) {
	for _, n := range []int64{0, 1, -1, 2_000_000_000, -4} {
		f.Add(n)
	}
	f.Fuzz(func(t *testing.T, n int64) {
		if IsEven(n) != (n&1 == 0) {
			t.Errorf("IsEven(%d) disagrees with the low bit", n)
		}
	})
}
