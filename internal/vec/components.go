package vec

import (
	"fmt"
	"math"
)

// Operand is the right-hand side of a component operation: either a scalar
// broadcast over every component or a list matching the left-hand arity.
type Operand struct {
	scalar     float64
	components []float64
	isScalar   bool
}

func Scalar(f float64) Operand { return Operand{scalar: f, isScalar: true} }

func Components(fs ...float64) Operand {
	c := make([]float64, len(fs))
	copy(c, fs)
	return Operand{components: c}
}

func (o Operand) at(i int) float64 {
	if o.isScalar {
		return o.scalar
	}
	return o.components[i]
}

func (o Operand) check(n int) error {
	if o.isScalar || len(o.components) == n {
		return nil
	}
	return fmt.Errorf("%w: %d components against %d", ErrArity, n, len(o.components))
}

func apply(xs []float64, o Operand, fn func(a, b float64) float64) ([]float64, error) {
	if err := o.check(len(xs)); err != nil {
		return nil, err
	}
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = fn(x, o.at(i))
	}
	return out, nil
}

func Multiply(xs []float64, o Operand) ([]float64, error) {
	return apply(xs, o, func(a, b float64) float64 { return a * b })
}

func Exponentiate(xs []float64, o Operand) ([]float64, error) {
	return apply(xs, o, math.Pow)
}

// Cap limits each component from above.
func Cap(xs []float64, o Operand) ([]float64, error) {
	return apply(xs, o, math.Min)
}

// SumComponents adds up every component of xs.
func SumComponents(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}
