package cluster

import "math"

// Power returns the power-saving percentage for partitioning a graph of
// nodes total nodes into clusters of size r and b, with the remaining
// g = nodes - r - b nodes acting as connectors:
//
//	p_before = nodes^2
//	p_after  = r*(r+g) + b*(b+g) + nodes*g
//	power    = 100 * (1 - p_after/p_before)
//
// The score is positive exactly when both clusters are non-empty and
// never exceeds 50.
func Power(nodes, r, b int) float64 {
	g := nodes - r - b
	pBefore := float64(nodes) * float64(nodes)
	pAfter := float64(r)*float64(r+g) + float64(b)*float64(b+g) + float64(nodes)*float64(g)
	return 100 * (1 - pAfter/pBefore)
}

// round2 rounds to two decimal places for report output.
func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
