// Package dp implements the minimum dominating partition (MDP) algorithm
// and the base-b digit splitting it operates on (spec.md §4.1), grounded
// on _examples/original_source/src/dp.rs and the Go prototype's
// findComplete/splitNumber (_examples/original_source/go/octopus/octopus.go).
package dp

import "math/big"

var (
	bigZero = big.NewInt(0)
	bigOne  = big.NewInt(1)
)

// MDP returns S(v,b), the minimum dominating partition of v in base b,
// sorted ascending by numeric value. Coverage, minimality and
// determinism are as specified in spec.md §4.1.
func MDP(v *big.Int, base int) []*big.Int {
	set := []*big.Int{new(big.Int).Set(v)}
	seen := map[string]bool{v.String(): true}

	b := big.NewInt(int64(base))
	scale := new(big.Int).Set(b)
	vPlus1 := new(big.Int).Add(v, bigOne)
	mod := new(big.Int)
	quotient := new(big.Int)

	for scale.Cmp(v) <= 0 {
		mod.Mod(vPlus1, scale)
		if mod.Sign() != 0 {
			// p = floor(v/scale)*scale - 1
			quotient.Div(v, scale)
			p := new(big.Int).Mul(quotient, scale)
			p.Sub(p, bigOne)
			if p.Sign() >= 0 {
				key := p.String()
				if !seen[key] {
					seen[key] = true
					set = append(set, p)
				}
			}
		}
		scale.Mul(scale, b)
	}

	sortAscending(set)
	return set
}

func sortAscending(set []*big.Int) {
	for i := 1; i < len(set); i++ {
		for j := i; j > 0 && set[j-1].Cmp(set[j]) > 0; j-- {
			set[j-1], set[j] = set[j], set[j-1]
		}
	}
}

// Digits returns the base-b digit vector of v, least-significant digit
// first, padded (with zero digits) to exactly k entries.
func Digits(v *big.Int, base, k int) []int {
	digits := make([]int, k)
	b := big.NewInt(int64(base))
	rem := new(big.Int).Set(v)
	mod := new(big.Int)
	for i := 0; i < k; i++ {
		rem.DivMod(rem, b, mod)
		digits[i] = int(mod.Int64())
	}
	return digits
}

// Pow returns base^exp as a *big.Int.
func Pow(base, exp int) *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(base)), big.NewInt(int64(exp)), nil)
}
