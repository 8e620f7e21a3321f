package models

import (
	"ndfilter/pkg/raster"
)

// Frame represents a single 2D intensity image with metadata
type Frame struct {
	// Raster is the actual image data with intensities in [0, 1]
	Raster *raster.Raster[float64]

	// Index is the position of this frame in the sequence
	Index int

	// Filename is the original filename of the frame
	Filename string
}

// Volume represents a 3D intensity raster assembled from frames
type Volume struct {
	// Raster holds the voxel data with intensities in [0, 1]
	Raster *raster.Raster[float64]

	// VoxelSize is the physical size of each voxel in mm
	VoxelSize struct {
		X, Y, Z float64
	}
}

// NewVolume builds a volume of the given extents with unit voxel size
func NewVolume(width, height, depth int) (*Volume, error) {
	r, err := raster.New[float64](width, height, depth)
	if err != nil {
		return nil, err
	}

	v := &Volume{Raster: r}
	v.VoxelSize.X = 1
	v.VoxelSize.Y = 1
	v.VoxelSize.Z = 1
	return v, nil
}

// Width returns the extent of the volume along the first axis
func (v *Volume) Width() int { return v.Raster.Extent(0) }

// Height returns the extent of the volume along the second axis
func (v *Volume) Height() int { return v.Raster.Extent(1) }

// Depth returns the extent of the volume along the third axis
func (v *Volume) Depth() int { return v.Raster.Extent(2) }
