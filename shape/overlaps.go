package shape

import (
	"math"
	"sort"

	"github.com/tsawler/redacta/model"
)

// Grid cell size in page points, roughly 0.7 inch. Overlap checks only
// compare boxes sharing a cell, which keeps the pass near linear.
const gridCellPt = 50.0

type gridCell struct{ row, col int }

func bboxCells(b model.BBox) []gridCell {
	c0 := int(math.Floor(b.X0 / gridCellPt))
	r0 := int(math.Floor(b.Y0 / gridCellPt))
	c1 := int(math.Floor(b.X1 / gridCellPt))
	r1 := int(math.Floor(b.Y1 / gridCellPt))
	cells := make([]gridCell, 0, (r1-r0+1)*(c1-c0+1))
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			cells = append(cells, gridCell{r, c})
		}
	}
	return cells
}

// ResolveOverlaps clips region boxes on one page so that no two
// overlap. Higher-confidence regions keep their geometry; each
// lower-confidence box is cut back along the axis of least overlap,
// away from the keeper's centre. Boxes clipped below two points in
// either dimension are dropped.
func ResolveOverlaps(regions []model.PIIRegion) []model.PIIRegion {
	if len(regions) <= 1 {
		return regions
	}

	ordered := make([]model.PIIRegion, len(regions))
	copy(ordered, regions)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Confidence > ordered[j].Confidence
	})

	var final []model.PIIRegion
	grid := make(map[gridCell][]int)

	for _, region := range ordered {
		bbox := region.BBox

		seen := make(map[int]bool)
		var keepers []int
		for _, cell := range bboxCells(bbox) {
			for _, ki := range grid[cell] {
				if !seen[ki] {
					seen[ki] = true
					keepers = append(keepers, ki)
				}
			}
		}
		sort.Ints(keepers)

		for _, ki := range keepers {
			keeper := final[ki].BBox
			inter := bbox.Intersection(keeper)
			if inter.Width() <= 0 || inter.Height() <= 0 {
				continue
			}

			overlapX := math.Min(bbox.X1, keeper.X1) - math.Max(bbox.X0, keeper.X0)
			overlapY := math.Min(bbox.Y1, keeper.Y1) - math.Max(bbox.Y0, keeper.Y0)

			if overlapY <= overlapX {
				if bbox.CenterY() < keeper.CenterY() {
					bbox.Y1 = keeper.Y0
				} else {
					bbox.Y0 = keeper.Y1
				}
			} else {
				if bbox.Center().X < keeper.Center().X {
					bbox.X1 = keeper.X0
				} else {
					bbox.X0 = keeper.X1
				}
			}
		}

		if bbox.Width() < 2 || bbox.Height() < 2 {
			continue
		}

		region.BBox = bbox
		idx := len(final)
		final = append(final, region)
		for _, cell := range bboxCells(bbox) {
			grid[cell] = append(grid[cell], idx)
		}
	}
	return final
}
