package pipeline

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"ndfilter/internal/models"
	"ndfilter/pkg/raster"
)

// loadFrames loads and sorts the input frames from the configured directory.
// Files are filtered to JPEG images and ordered by the numeric part of their
// filenames so the stacking order matches the acquisition order.
func (p *Pipeline) loadFrames() error {
	entries, err := os.ReadDir(p.params.InputDir)
	if err != nil {
		return err
	}

	var imageFiles []string
	for _, entry := range entries {
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext == ".jpg" || ext == ".jpeg" {
			imageFiles = append(imageFiles, entry.Name())
		}
	}

	if len(imageFiles) == 0 {
		return fmt.Errorf("no JPG images found in input directory")
	}

	// Sort files by the numeric part of their names so that frame_2 comes
	// before frame_10
	sort.Slice(imageFiles, func(i, j int) bool {
		return extractNumber(imageFiles[i]) < extractNumber(imageFiles[j])
	})

	for i, filename := range imageFiles {
		img, err := loadImage(filepath.Join(p.params.InputDir, filename))
		if err != nil {
			return fmt.Errorf("failed to load image %s: %w", filename, err)
		}

		frame, err := imageToRaster(img)
		if err != nil {
			return fmt.Errorf("failed to convert image %s: %w", filename, err)
		}

		// Store dimensions from first image
		// We assume all frames have the same dimensions
		if len(p.frames) == 0 {
			p.width = frame.Extent(0)
			p.height = frame.Extent(1)
		} else if frame.Extent(0) != p.width || frame.Extent(1) != p.height {
			return fmt.Errorf("frame %s has dimensions %dx%d, expected %dx%d",
				filename, frame.Extent(0), frame.Extent(1), p.width, p.height)
		}

		p.frames = append(p.frames, models.Frame{
			Raster:   frame,
			Index:    i,
			Filename: filename,
		})
	}

	p.log.Info().
		Int("frames", len(p.frames)).
		Int("width", p.width).
		Int("height", p.height).
		Msg("loaded input frames")

	return nil
}

// extractNumber extracts the numeric part from a filename
func extractNumber(filename string) int {
	base := filepath.Base(filename)
	numStr := ""
	for _, c := range base {
		if c >= '0' && c <= '9' {
			numStr += string(c)
		}
	}

	if numStr != "" {
		num, err := strconv.Atoi(numStr)
		if err == nil {
			return num
		}
	}
	return 0
}

// loadImage loads a JPEG image from a file
func loadImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, err := jpeg.Decode(file)
	if err != nil {
		return nil, err
	}

	return img, nil
}

// imageToRaster converts an image to a 2D intensity raster in [0, 1]
func imageToRaster(img image.Image) (*raster.Raster[float64], error) {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	out, err := raster.New[float64](width, height)
	if err != nil {
		return nil, err
	}

	data := out.Data()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, _, _, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// Convert 16-bit color to float64 (0-1 range)
			data[y*width+x] = float64(r) / 65535.0
		}
	}

	return out, nil
}

// rasterToImage converts a 2D intensity raster back to a 16-bit gray image
func rasterToImage(r *raster.Raster[float64]) image.Image {
	width := r.Extent(0)
	height := r.Extent(1)
	img := image.NewGray16(image.Rect(0, 0, width, height))

	data := r.Data()
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			v := data[y*width+x]
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			img.SetGray16(x, y, color.Gray16{Y: uint16(v * 65535.0)})
		}
	}

	return img
}

// maskSliceToRaster extracts one z-slice of a 3D mask as a 2D intensity raster
func maskSliceToRaster(mask *raster.Raster[bool], z int) *raster.Raster[float64] {
	width := mask.Extent(0)
	height := mask.Extent(1)

	out, _ := raster.New[float64](width, height)
	src := mask.Data()[z*width*height : (z+1)*width*height]
	dst := out.Data()
	for i, v := range src {
		if v {
			dst[i] = 1
		}
	}
	return out
}

// saveIntermediaryFrame saves a 2D raster as a JPEG under the given stage
// directory. It helps visualize the steps of the pipeline.
func (p *Pipeline) saveIntermediaryFrame(stage string, r *raster.Raster[float64], index int) error {
	// Skip if saving intermediary results is disabled
	if !p.params.SaveIntermediary {
		return nil
	}

	stageDir := filepath.Join(p.params.IntermediaryDir, stage)
	if err := os.MkdirAll(stageDir, 0755); err != nil {
		return fmt.Errorf("failed to create intermediary directory: %w", err)
	}

	filename := filepath.Join(stageDir, fmt.Sprintf("%03d.jpg", index))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	defer file.Close()

	if err := jpeg.Encode(file, rasterToImage(r), &jpeg.Options{Quality: 90}); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}

	return nil
}
