package nation

// Score is the leaderboard metric. Negative reputation contributes nothing
// rather than subtracting.
func Score(n Nation) int {
	rep := n.Reputation
	if rep < 0 {
		rep = 0
	}
	return len(n.Regions)*100 + n.Treasury*2 + n.MilitaryPower*3 + rep*2
}
