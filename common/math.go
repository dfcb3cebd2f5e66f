package common

import (
	"math"
)

// BoundingBox computes the axis-aligned bounding box for a set of positions.
// Returns two zero vectors when positions is empty.
//
// Parameters:
//   - positions: the vertex positions
//
// Returns:
//   - [3]float32: the minimum corner
//   - [3]float32: the maximum corner
func BoundingBox(positions [][3]float32) ([3]float32, [3]float32) {
	if len(positions) == 0 {
		return [3]float32{}, [3]float32{}
	}

	bmin := [3]float32{
		float32(math.MaxFloat32),
		float32(math.MaxFloat32),
		float32(math.MaxFloat32),
	}
	bmax := [3]float32{
		-float32(math.MaxFloat32),
		-float32(math.MaxFloat32),
		-float32(math.MaxFloat32),
	}

	for _, pos := range positions {
		for j := 0; j < 3; j++ {
			if pos[j] < bmin[j] {
				bmin[j] = pos[j]
			}
			if pos[j] > bmax[j] {
				bmax[j] = pos[j]
			}
		}
	}

	return bmin, bmax
}

// Center returns the midpoint of an axis-aligned bounding box.
func Center(bmin, bmax [3]float32) [3]float32 {
	return [3]float32{
		(bmin[0] + bmax[0]) * 0.5,
		(bmin[1] + bmax[1]) * 0.5,
		(bmin[2] + bmax[2]) * 0.5,
	}
}
