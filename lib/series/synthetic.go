package series

import (
	"context"
	"fmt"
	"github.com/PaesslerAG/gval"
	"github.com/kadaan/linedensity/lib/errors"
	"math"
	"math/rand"
)

const (
	DefaultModelExpression = "height/4 * Sin((x/k)/20) + height/2"
	DefaultNoiseStdDev     = 12.0
)

var (
	expressionLanguage = gval.Full(
		gval.Function("Abs", math.Abs),
		gval.Function("Acos", math.Acos),
		gval.Function("Asin", math.Asin),
		gval.Function("Atan", math.Atan),
		gval.Function("Atan2", math.Atan2),
		gval.Function("Ceil", math.Ceil),
		gval.Function("Cos", math.Cos),
		gval.Function("Cosh", math.Cosh),
		gval.Function("Exp", math.Exp),
		gval.Function("Floor", math.Floor),
		gval.Function("Hypot", math.Hypot),
		gval.Function("Log", math.Log),
		gval.Function("Log10", math.Log10),
		gval.Function("Log2", math.Log2),
		gval.Function("Max", math.Max),
		gval.Function("Min", math.Min),
		gval.Function("Mod", math.Mod),
		gval.Function("Pow", math.Pow),
		gval.Function("Round", math.Round),
		gval.Function("Sin", math.Sin),
		gval.Function("Sinh", math.Sinh),
		gval.Function("Sqrt", math.Sqrt),
		gval.Function("Tan", math.Tan),
		gval.Function("Tanh", math.Tanh),
		gval.Function("Trunc", math.Trunc))
)

// SyntheticConfig describes a family of noisy copies of one model curve.
// The model expression sees the variables x (regular index), k, width and
// height.
type SyntheticConfig struct {
	Count       int
	Width       int
	Height      int
	K           int
	Expression  string
	NoiseStdDev float64
	Seed        int64
}

type syntheticSource struct {
	config SyntheticConfig
	model  []float64
}

// NewSyntheticSource evaluates the model once. Series i draws its noise from
// its own generator seeded with Seed+i, so a series does not depend on the
// order in which series are requested.
func NewSyntheticSource(c SyntheticConfig) (Source, error) {
	if c.Count <= 0 || c.Width <= 0 || c.Height <= 0 || c.K <= 0 {
		return nil, errors.NewConfigError("synthetic source needs positive count, width, height and k")
	}
	if c.NoiseStdDev < 0 {
		return nil, errors.NewConfigError("noise standard deviation must not be negative, got %v", c.NoiseStdDev)
	}
	expression := c.Expression
	if expression == "" {
		expression = DefaultModelExpression
	}
	evaluable, err := expressionLanguage.NewEvaluable(expression)
	if err != nil {
		return nil, errors.NewConfigError("failed to parse model expression %q: %v", expression, err)
	}

	n := c.Width * c.K
	model := make([]float64, n)
	parameters := map[string]interface{}{
		"k":      float64(c.K),
		"width":  float64(c.Width),
		"height": float64(c.Height),
	}
	for x := 0; x < n; x++ {
		parameters["x"] = float64(x)
		v, err := evaluable.EvalFloat64(context.Background(), parameters)
		if err != nil {
			return nil, errors.NewConfigError("failed to evaluate model expression %q at x=%d: %v", expression, x, err)
		}
		model[x] = v
	}
	return &syntheticSource{
		config: c,
		model:  model,
	}, nil
}

func (s *syntheticSource) Len() int {
	return s.config.Count
}

func (s *syntheticSource) Series(i int) (Series, error) {
	if i < 0 || i >= s.config.Count {
		return Series{}, errors.NewInvariantViolation("series index %d out of range [0, %d)", i, s.config.Count)
	}
	rng := rand.New(rand.NewSource(s.config.Seed + int64(i)))
	height := float64(s.config.Height)
	points := make([]Point, len(s.model))
	for x, v := range s.model {
		value := v + rng.NormFloat64()*s.config.NoiseStdDev
		points[x] = Point{T: float64(x), V: math.Max(0, math.Min(height, value))}
	}
	return Series{
		Name:    fmt.Sprintf("synthetic-%d", i),
		Points:  points,
		Regular: true,
	}, nil
}
