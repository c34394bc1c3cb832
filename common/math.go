package common

func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// Clamp limits v to [lo, hi]. lo wins when the range is inverted.
func Clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}

// EaseOut maps t in [0,1] onto a quadratic ease-out curve.
func EaseOut(t float64) float64 {
	t = Clamp(t, 0, 1)
	return 1 - (1-t)*(1-t)
}

func Sign(v float64) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
