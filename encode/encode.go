package encode

import (
	"math"
	"strconv"

	"github.com/opyruso/nw-leaderboard-sub000/core"
)

// Node size constants.
const (
	SizeOrigin    = 88.0
	SizeAlternate = 64.0
	SizeRelated   = 44.0

	sizeLogFactor = 28.0
	sizeBonusCap  = 42.0
)

// Edge width constants.
const (
	WidthBase = 2.0
	WidthMax  = 9.0

	widthLogFactor = 2.6
)

// NodeSize returns the rendered diameter of n.
func NodeSize(n core.Node) float64 {
	var base float64
	switch n.Type {
	case core.TypeOrigin:
		base = SizeOrigin
	case core.TypeAlternate:
		base = SizeAlternate
	default:
		base = SizeRelated
	}
	rc := n.RunCount
	if rc < 0 {
		rc = 0
	}

	return base + math.Min(math.Log10(float64(rc)+1)*sizeLogFactor, sizeBonusCap)
}

// EdgeWidth returns the rendered stroke width of e.
func EdgeWidth(e core.Edge) float64 {
	if e.Alternate || e.RunCount == nil || *e.RunCount <= 0 {
		return WidthBase
	}

	return math.Min(WidthBase+math.Log10(float64(*e.RunCount)+1)*widthLogFactor, WidthMax)
}

// EdgeLabel returns the text drawn on e.
func EdgeLabel(e core.Edge) string {
	if e.Alternate {
		return ""
	}
	var rc int64
	if e.RunCount != nil {
		rc = *e.RunCount
	}

	return strconv.FormatInt(rc, 10)
}
