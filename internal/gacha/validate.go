package gacha

import (
	"fmt"
	"math"
	"strings"
)

func validateProb(p float64) error {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return ErrInvalidProb
	}
	if p < 0 || p > 1 {
		return ErrInvalidProb
	}
	return nil
}

// Validate checks the draw rules. All problems are reported at once.
func (r Rules) Validate() error {
	var errs []string
	if r.MaxPity5 < 1 {
		errs = append(errs, "max_pity_5 must be >= 1")
	}
	if r.MaxPity4 < 1 {
		errs = append(errs, "max_pity_4 must be >= 1")
	}
	if validateProb(r.BaseProb5) != nil {
		errs = append(errs, "base_prob_5 must be in [0,1]")
	}
	if validateProb(r.BaseProb4) != nil {
		errs = append(errs, "base_prob_4 must be in [0,1]")
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: rules: %s", ErrInvalidArgument, strings.Join(errs, "; "))
	}
	return nil
}
