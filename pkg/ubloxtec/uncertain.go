package ubloxtec

import "math"

// Uncertain is a value carried alongside its 1-sigma standard deviation.
// Arithmetic on Uncertain follows first-order Gaussian error propagation:
// addition/subtraction combine absolute errors in quadrature, multiplication
// and division combine relative errors in quadrature.
type Uncertain struct {
	Value float64
	Stdev float64
}

// Exact wraps a scalar with zero uncertainty.
func Exact(value float64) Uncertain {
	return Uncertain{Value: value}
}

// Add returns u + other, with Stdev = sqrt(u.Stdev^2 + other.Stdev^2).
func (u Uncertain) Add(other Uncertain) Uncertain {
	return Uncertain{
		Value: u.Value + other.Value,
		Stdev: math.Hypot(u.Stdev, other.Stdev),
	}
}

// Neg returns -u; the standard deviation is unaffected by sign.
func (u Uncertain) Neg() Uncertain {
	return Uncertain{Value: -u.Value, Stdev: u.Stdev}
}

// Sub returns u - other, expressed as u.Add(other.Neg()).
func (u Uncertain) Sub(other Uncertain) Uncertain {
	return u.Add(other.Neg())
}

// Mul returns u * other. Relative errors are combined in quadrature and
// scaled back to an absolute standard deviation on the product:
// Stdev = |u.Value*other.Value| * sqrt((u.Stdev/u.Value)^2 + (other.Stdev/other.Value)^2).
func (u Uncertain) Mul(other Uncertain) Uncertain {
	relU := u.Stdev / u.Value
	relOther := other.Stdev / other.Value
	value := u.Value * other.Value
	return Uncertain{
		Value: value,
		Stdev: math.Abs(value) * math.Hypot(relU, relOther),
	}
}

// Inv returns 1/u, with Stdev = |u.Stdev / u.Value^2|.
func (u Uncertain) Inv() Uncertain {
	return Uncertain{
		Value: 1 / u.Value,
		Stdev: math.Abs(u.Stdev / (u.Value * u.Value)),
	}
}

// Div returns u / other, expressed as u.Mul(other.Inv()).
func (u Uncertain) Div(other Uncertain) Uncertain {
	return u.Mul(other.Inv())
}

// Scale multiplies u by an exact scalar.
func (u Uncertain) Scale(factor float64) Uncertain {
	return u.Mul(Exact(factor))
}
