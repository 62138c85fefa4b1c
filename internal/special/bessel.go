package special

import "math"

// Branch point between the small-argument polynomial and the asymptotic form.
const branch = 3.75

var (
	i0Small = [...]float64{1.0, 3.5156229, 3.0899424, 1.2067492, 0.2659732, 0.0360768, 0.0045813}
	i0Large = [...]float64{0.39894228, 0.01328592, 0.00225319, -0.00157565, 0.00916281, -0.02057706, 0.02635537, -0.01647633, 0.00392377}

	i1Small = [...]float64{0.5, 0.87890594, 0.51498869, 0.15084934, 0.02658733, 0.00301532, 0.00032411}
	i1Large = [...]float64{0.39894228, -0.03988024, -0.00362018, 0.00163801, -0.01031555, 0.02282967, -0.02895312, 0.01787654, -0.00420059}
)

// horner evaluates c[0] + c[1]y + c[2]y² + ...
func horner(c []float64, y float64) float64 {
	acc := 0.0
	for i := len(c) - 1; i >= 0; i-- {
		acc = acc*y + c[i]
	}
	return acc
}

// I0 returns the modified Bessel function of the first kind, order 0.
func I0(x float64) float64 {
	ax := math.Abs(x)
	if ax < branch {
		y := x / branch
		return horner(i0Small[:], y*y)
	}
	y := branch / ax
	return horner(i0Large[:], y) * math.Exp(ax) / math.Sqrt(ax)
}

// I1 returns the modified Bessel function of the first kind, order 1.
// I1 is odd, so the sign of the result follows x. Arguments beyond roughly
// 700 overflow to ±Inf.
func I1(x float64) float64 {
	ax := math.Abs(x)
	var ans float64
	if ax < branch {
		y := x / branch
		ans = ax * horner(i1Small[:], y*y)
	} else {
		y := branch / ax
		ans = horner(i1Large[:], y) * math.Exp(ax) / math.Sqrt(ax)
	}
	if x < 0 {
		return -ans
	}
	return ans
}
