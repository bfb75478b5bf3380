package sim

import (
	"math"
	"sort"

	"github.com/automoto/hookshot/shared/gamemath"
	"github.com/automoto/hookshot/tags"
	"github.com/solarlune/resolv"
)

// maxIndexCells caps the grid size. Players spread wider than this are
// scanned linearly instead.
const maxIndexCells = 1 << 16

// queryMargin widens the query box on every side. resolv maps an object to the
// cells under [X, X+W-1], so boxes overlapping by less than a pixel across a
// cell edge would otherwise share no cell.
const queryMargin = 1

// playerIndex buckets players into a resolv space so each hook only runs the
// exact circle test against players in nearby cells. It is rebuilt every tick
// after players have moved.
type playerIndex struct {
	playerRadius float64
	hookRadius   float64

	space  *resolv.Space
	query  *resolv.Object
	origin [2]float64
	order  map[string]int
	all    []*Player
}

func newPlayerIndex(playerRadius, hookRadius float64) *playerIndex {
	return &playerIndex{
		playerRadius: playerRadius,
		hookRadius:   hookRadius,
		order:        make(map[string]int),
	}
}

func (ix *playerIndex) cellSize() int {
	return int(math.Max(1, math.Ceil(2*ix.playerRadius)))
}

func (ix *playerIndex) rebuild(players []*Player, hooks []*Hook) {
	ix.all = players
	ix.space = nil
	ix.query = nil
	clear(ix.order)
	for i, p := range players {
		ix.order[p.ID] = i
	}
	if len(players) == 0 {
		return
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	grow := func(x, y float64) {
		minX, minY = math.Min(minX, x), math.Min(minY, y)
		maxX, maxY = math.Max(maxX, x), math.Max(maxY, y)
	}
	for _, p := range players {
		grow(p.Loc.X, p.Loc.Y)
	}
	for _, h := range hooks {
		grow(h.Loc.X, h.Loc.Y)
	}

	pad := 2*(ix.playerRadius+ix.hookRadius) + queryMargin
	width, height := maxX-minX+2*pad, maxY-minY+2*pad
	cell := ix.cellSize()
	cols, rows := math.Ceil(width/float64(cell)), math.Ceil(height/float64(cell))
	if math.IsNaN(cols) || math.IsNaN(rows) || cols*rows > maxIndexCells {
		return
	}

	ix.origin = [2]float64{minX - pad, minY - pad}
	ix.space = resolv.NewSpace(int(width)+cell, int(height)+cell, cell, cell)

	r := ix.playerRadius
	for _, p := range players {
		x, y := ix.local(p.Loc.X, p.Loc.Y)
		obj := resolv.NewObject(x-r, y-r, 2*r, 2*r, tags.ResolvPlayer)
		obj.Data = p
		ix.space.Add(obj)
	}

	reach := ix.hookRadius + queryMargin
	ix.query = resolv.NewObject(0, 0, 2*reach, 2*reach, tags.ResolvHook)
	ix.space.Add(ix.query)
}

func (ix *playerIndex) local(x, y float64) (float64, float64) {
	return x - ix.origin[0], y - ix.origin[1]
}

// candidates returns the players that may overlap a hook at loc, in join
// order. Callers still apply the exact circle test.
func (ix *playerIndex) candidates(loc gamemath.Vec2) []*Player {
	if ix.space == nil {
		return ix.all
	}

	x, y := ix.local(loc.X, loc.Y)
	ix.query.X = x - ix.hookRadius - queryMargin
	ix.query.Y = y - ix.hookRadius - queryMargin
	ix.query.Update()

	check := ix.query.Check(0, 0, tags.ResolvPlayer)
	if check == nil {
		return nil
	}
	objs := check.ObjectsByTags(tags.ResolvPlayer)
	out := make([]*Player, 0, len(objs))
	for _, obj := range objs {
		if p, ok := obj.Data.(*Player); ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return ix.order[out[i].ID] < ix.order[out[j].ID]
	})
	return out
}
