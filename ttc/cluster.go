package ttc

import (
	"math"
)

// spatialIndex accelerates neighbour queries during clustering with a
// regular 2D grid over the X/Y plane. Cell size matches the clustering
// tolerance, so every 3D neighbour of a point lives in the 3x3 cell
// neighbourhood of that point's cell.
type spatialIndex struct {
	cellSize float64
	grid     map[int64][]int
}

func newSpatialIndex(cellSize float64, points []RangePoint) *spatialIndex {
	si := &spatialIndex{
		cellSize: cellSize,
		grid:     make(map[int64][]int, len(points)/4+1),
	}
	for i, p := range points {
		id := si.cellID(p.X, p.Y)
		si.grid[id] = append(si.grid[id], i)
	}
	return si
}

// cellID computes a unique cell identifier using Szudzik's pairing function
// over zigzag-encoded cell coordinates, which handles negative coordinates.
func (si *spatialIndex) cellID(x, y float64) int64 {
	cellX := int64(math.Floor(x / si.cellSize))
	cellY := int64(math.Floor(y / si.cellSize))
	return pairCells(cellX, cellY)
}

func pairCells(cellX, cellY int64) int64 {
	var a, b int64
	if cellX >= 0 {
		a = 2 * cellX
	} else {
		a = -2*cellX - 1
	}
	if cellY >= 0 {
		b = 2 * cellY
	} else {
		b = -2*cellY - 1
	}
	if a >= b {
		return a*a + a + b
	}
	return a + b*b
}

// regionQuery returns indices of all points within tolerance of points[idx],
// using full 3D Euclidean distance.
func (si *spatialIndex) regionQuery(points []RangePoint, idx int, tolerance float64) []int {
	p := points[idx].Vec()
	tolerance2 := tolerance * tolerance
	neighbors := []int{}

	cellX := int64(math.Floor(points[idx].X / si.cellSize))
	cellY := int64(math.Floor(points[idx].Y / si.cellSize))
	for dx := int64(-1); dx <= 1; dx++ {
		for dy := int64(-1); dy <= 1; dy++ {
			for _, candidateIdx := range si.grid[pairCells(cellX+dx, cellY+dy)] {
				if points[candidateIdx].Vec().Sub(p).Norm2() <= tolerance2 {
					neighbors = append(neighbors, candidateIdx)
				}
			}
		}
	}
	return neighbors
}

// ClusterRangePoints removes spatial outliers from a point collection by
// single-linkage euclidean clustering: two points share a cluster when one
// is reachable from the other through a chain of neighbours each within
// tolerance. Only clusters whose member count falls within
// [minSize, maxSize] survive; smaller clusters are noise speckle and larger
// ones are not expected for a single object silhouette at this tolerance.
//
// The surviving points are returned flattened in input order; cluster
// boundaries are not retained. No input, or no cluster within the size
// bounds, yields an empty result which callers must treat as "no valid
// range data" rather than a zero distance.
func ClusterRangePoints(points []RangePoint, tolerance float64, minSize, maxSize int) []RangePoint {
	if len(points) == 0 {
		return nil
	}

	si := newSpatialIndex(tolerance, points)
	labels := make([]int, len(points)) // 0=unvisited, >0=cluster ID
	clusterSizes := map[int]int{}
	clusterID := 0

	for i := range points {
		if labels[i] != 0 {
			continue
		}
		clusterID++
		labels[i] = clusterID
		size := 1
		queue := []int{i}
		for len(queue) > 0 {
			idx := queue[0]
			queue = queue[1:]
			for _, neighborIdx := range si.regionQuery(points, idx, tolerance) {
				if labels[neighborIdx] != 0 {
					continue
				}
				labels[neighborIdx] = clusterID
				size++
				queue = append(queue, neighborIdx)
			}
		}
		clusterSizes[clusterID] = size
	}

	survivors := make([]RangePoint, 0, len(points))
	for i, label := range labels {
		if size := clusterSizes[label]; size >= minSize && size <= maxSize {
			survivors = append(survivors, points[i])
		}
	}
	return survivors
}
