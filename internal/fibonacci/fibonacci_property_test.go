package fibonacci

import (
	"context"
	"math/big"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func calcF(calc coreCalculator, n uint64) (*big.Int, error) {
	return calc.CalculateCore(context.Background(), func(float64) {}, n, Options{})
}

// TestCassinisIdentity_PropertyBased checks F(n-1)·F(n+1) − F(n)² = (−1)ⁿ
// on the unbounded calculator.
func TestCassinisIdentity_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	calc := &BigIterativeCalculator{}
	properties.Property("big calculator satisfies Cassini's identity", prop.ForAll(
		func(n uint64) bool {
			prev, err1 := calcF(calc, n-1)
			cur, err2 := calcF(calc, n)
			next, err3 := calcF(calc, n+1)
			if err1 != nil || err2 != nil || err3 != nil {
				return false
			}
			lhs := new(big.Int).Mul(prev, next)
			lhs.Sub(lhs, new(big.Int).Mul(cur, cur))
			want := int64(1)
			if n%2 == 1 {
				want = -1
			}
			return lhs.Cmp(big.NewInt(want)) == 0
		},
		gen.UInt64Range(1, 5000),
	))

	properties.TestingRun(t)
}

// TestCalculatorsAgree_PropertyBased checks that every calculator agrees
// with the unbounded one wherever its domain allows.
func TestCalculatorsAgree_PropertyBased(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	ref := &BigIterativeCalculator{}
	properties.Property("iterative matches big for n <= 93", prop.ForAll(
		func(n uint64) bool {
			a, err1 := calcF(&IterativeCalculator{}, n)
			b, err2 := calcF(ref, n)
			return err1 == nil && err2 == nil && a.Cmp(b) == 0
		},
		gen.UInt64Range(0, MaxUint64Index),
	))
	properties.Property("recursive matches big for n <= 25", prop.ForAll(
		func(n uint64) bool {
			a, err1 := calcF(&RecursiveCalculator{}, n)
			b, err2 := calcF(ref, n)
			return err1 == nil && err2 == nil && a.Cmp(b) == 0
		},
		gen.UInt64Range(0, 25),
	))

	properties.TestingRun(t)
}

// FuzzCalculatorsConsistency cross-checks the fixed-width and big
// calculators on arbitrary indices.
func FuzzCalculatorsConsistency(f *testing.F) {
	for _, seed := range []uint64{0, 1, 2, 47, 92, 93, 94, 1000} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, n uint64) {
		n %= 2000
		bigVal, err := calcF(&BigIterativeCalculator{}, n)
		if err != nil {
			t.Fatalf("big F(%d): %v", n, err)
		}
		iterVal, err := calcF(&IterativeCalculator{}, n)
		if n > MaxUint64Index {
			if err == nil {
				t.Fatalf("iterative F(%d) should overflow", n)
			}
			if bigVal.IsUint64() {
				t.Fatalf("F(%d) = %s fits in uint64 but was rejected", n, bigVal)
			}
			return
		}
		if err != nil {
			t.Fatalf("iterative F(%d): %v", n, err)
		}
		if iterVal.Cmp(bigVal) != 0 {
			t.Fatalf("F(%d): iterative %s != big %s", n, iterVal, bigVal)
		}
	})
}
