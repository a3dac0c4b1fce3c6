package engine

import "golang.org/x/exp/constraints"

// abs returns the absolute value of x.
func abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

// sign returns the sign of x: -1, 0, or 1.
func sign[T constraints.Signed](x T) T {
	if x > 0 {
		return 1
	}
	if x < 0 {
		return -1
	}
	return 0
}

