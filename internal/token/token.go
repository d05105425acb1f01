package token

// Token defines how many units are required per draw

type Token struct {
	Name       string // e.g. "Astrite", "Lustrous Tide"
	PerDraw    int    // tokens per single draw, e.g. 160
	PerTenDraw int    // optional; if 0 -> equal to 10 * PerDraw, a special case of PerNDraw
	PerNDraw   int    // optional; if 0 -> equal to N * PerDraw
	N          int    // optional; if 0, not adoptive to this token
}

// TokensForDraws returns how many tokens are required for n draws.
// Bundles are spent first, the remainder at the single-draw price.
func (t Token) TokensForDraws(n int) int {
	if n <= 0 {
		return 0
	}
	if t.PerTenDraw > 0 && n >= 10 && t.N <= 1 {
		tens := n / 10
		remTens := n % 10
		return tens*t.PerTenDraw + remTens*t.PerDraw
	}
	if t.PerNDraw > 0 && n >= t.N && t.N > 1 {
		ns := n / t.N
		rem := n % t.N
		return ns*t.PerNDraw + rem*t.PerDraw
	}

	return n * t.PerDraw
}

// DrawsForTokens returns how many draws balance tokens can pay for, and the
// tokens left over.
func (t Token) DrawsForTokens(balance int) (draws, left int) {
	if balance <= 0 || t.PerDraw <= 0 {
		return 0, max(balance, 0)
	}
	// assumes bundles are no dearer than the same number of singles
	for t.TokensForDraws(draws+1) <= balance {
		draws++
	}
	return draws, balance - t.TokensForDraws(draws)
}
