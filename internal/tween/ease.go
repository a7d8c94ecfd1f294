package tween

import "github.com/chewxy/math32"

// Ease maps linear progress in [0,1] to eased progress. Every Ease returns 0 at 0 and 1 at 1.
type Ease func(p float32) float32

func Linear(p float32) float32 { return p }

// Power1In .. Power2InOut follow the usual quad/cubic curves; power1.out is the default for pans.
func Power1In(p float32) float32 { return p * p }
func Power1Out(p float32) float32 { return 1 - (1-p)*(1-p) }
func Power1InOut(p float32) float32 {
	if p < 0.5 {
		return 2 * p * p
	}
	return 1 - 2*(1-p)*(1-p)
}

func Power2In(p float32) float32 { return p * p * p }
func Power2Out(p float32) float32 {
	q := 1 - p
	return 1 - q*q*q
}
func Power2InOut(p float32) float32 {
	if p < 0.5 {
		return 4 * p * p * p
	}
	q := 1 - p
	return 1 - 4*q*q*q
}

func SineInOut(p float32) float32 { return -(math32.Cos(math32.Pi*p) - 1) / 2 }

var eases = map[string]Ease{
	"linear":       Linear,
	"none":         Linear,
	"power1.in":    Power1In,
	"power1.out":   Power1Out,
	"power1.inOut": Power1InOut,
	"power2.in":    Power2In,
	"power2.out":   Power2Out,
	"power2.inOut": Power2InOut,
	"sine.inOut":   SineInOut,
}

// ByName looks up an ease by its config name. Empty names resolve to power1.out.
func ByName(name string) (Ease, bool) {
	if name == "" {
		return Power1Out, true
	}
	e, ok := eases[name]
	return e, ok
}
