package core

import "math"

// Scoring defaults.
const (
	DefaultPointsPerBall = 1.0
	DefaultPointsGrowth  = 1.25
	DefaultPointsPerSec  = 5
)

// WeightedScore scores n removed marbles: base per marble, plus an increment
// for every marble from the 4th on that starts at base and grows by growth.
func WeightedScore(n int, base, growth float64) int {
	if n <= 0 {
		return 0
	}
	score := float64(n) * base
	k := base
	for i := 4; i <= n; i++ {
		score += k
		k *= growth
	}
	return int(math.Floor(score))
}

// TimeBonus returns the level-clear bonus for the remaining time, counted in
// whole seconds rounded up.
func TimeBonus(remainingMsecs float64, pointsPerSec int) int {
	if remainingMsecs <= 0 {
		return 0
	}
	return int(math.Ceil(remainingMsecs/1000)) * pointsPerSec
}
