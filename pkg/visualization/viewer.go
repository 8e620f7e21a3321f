// Package visualization renders 2D views of 3D intensity rasters so that
// pipeline stages can be inspected visually.
package visualization

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"math"
	"os"
	"path/filepath"

	"ndfilter/internal/models"
	"ndfilter/pkg/raster"
)

// Viewer extracts and saves planar views of a 3D volume
type Viewer struct {
	volume *models.Volume
}

// NewViewer creates a viewer over the given volume
func NewViewer(volume *models.Volume) *Viewer {
	return &Viewer{volume: volume}
}

// gray16At converts an intensity in [0, 1] to a 16-bit gray value
func gray16At(value float64) color.Gray16 {
	v := uint16(math.Max(0, math.Min(65535, value*65535)))
	return color.Gray16{Y: v}
}

// ExtractSlice extracts a 2D slice from the 3D volume along the specified axis
func (v *Viewer) ExtractSlice(axis string, position int) (image.Image, error) {
	if position < 0 {
		return nil, fmt.Errorf("position must be non-negative")
	}

	vol := v.volume.Raster
	width, height, depth := v.volume.Width(), v.volume.Height(), v.volume.Depth()

	var img *image.Gray16

	switch axis {
	case "x", "X":
		// Extract slice along YZ plane
		if position >= width {
			return nil, fmt.Errorf("position %d exceeds width %d", position, width)
		}

		img = image.NewGray16(image.Rect(0, 0, depth, height))
		for y := 0; y < height; y++ {
			for z := 0; z < depth; z++ {
				img.SetGray16(z, y, gray16At(vol.At(raster.Position{position, y, z})))
			}
		}

	case "y", "Y":
		// Extract slice along XZ plane
		if position >= height {
			return nil, fmt.Errorf("position %d exceeds height %d", position, height)
		}

		img = image.NewGray16(image.Rect(0, 0, width, depth))
		for z := 0; z < depth; z++ {
			for x := 0; x < width; x++ {
				img.SetGray16(x, z, gray16At(vol.At(raster.Position{x, position, z})))
			}
		}

	case "z", "Z":
		// Extract slice along XY plane
		if position >= depth {
			return nil, fmt.Errorf("position %d exceeds depth %d", position, depth)
		}

		img = image.NewGray16(image.Rect(0, 0, width, height))
		for y := 0; y < height; y++ {
			for x := 0; x < width; x++ {
				img.SetGray16(x, y, gray16At(vol.At(raster.Position{x, y, position})))
			}
		}

	default:
		return nil, fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	return img, nil
}

// ExtractRegion copies a 3D subregion of the volume into a new raster
func (v *Viewer) ExtractRegion(region raster.Box) (*raster.Raster[float64], error) {
	if region.Rank() != 3 {
		return nil, fmt.Errorf("region must be 3-dimensional, got rank %d", region.Rank())
	}
	if region.IsEmpty() {
		return nil, fmt.Errorf("region is empty")
	}

	domain := v.volume.Raster.Domain()
	clipped := domain.Intersect(region)
	if !clipped.Equal(region) {
		return nil, fmt.Errorf("region extends beyond volume boundaries")
	}

	out, err := raster.New[float64](region.Shape()...)
	if err != nil {
		return nil, err
	}

	region.ForEach(func(p raster.Position) {
		out.Set(p.Sub(region.Start), v.volume.Raster.At(p))
	})
	return out, nil
}

// SaveSlice saves an extracted slice as a JPEG image
func (v *Viewer) SaveSlice(img image.Image, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	return jpeg.Encode(file, img, &jpeg.Options{Quality: 90})
}

// SaveSliceSequence extracts and saves a sequence of slices along the specified axis
func (v *Viewer) SaveSliceSequence(axis string, outputDir string) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return err
	}

	var maxPos int
	switch axis {
	case "x", "X":
		maxPos = v.volume.Width()
	case "y", "Y":
		maxPos = v.volume.Height()
	case "z", "Z":
		maxPos = v.volume.Depth()
	default:
		return fmt.Errorf("invalid axis: %s (must be x, y, or z)", axis)
	}

	for pos := 0; pos < maxPos; pos++ {
		img, err := v.ExtractSlice(axis, pos)
		if err != nil {
			return err
		}

		filename := filepath.Join(outputDir, fmt.Sprintf("slice_%s_%03d.jpg", axis, pos))
		if err := v.SaveSlice(img, filename); err != nil {
			return err
		}
	}

	return nil
}
