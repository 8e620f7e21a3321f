// Package pipeline runs the full raster filtering workflow: load a stack of
// 2D frames, denoise them with a median filter, stack them into a volume,
// threshold the volume into a binary mask, apply morphology to the mask and
// report distribution and fidelity metrics.
package pipeline

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"ndfilter/internal/models"
	"ndfilter/pkg/config"
	"ndfilter/pkg/filter"
	"ndfilter/pkg/raster"
)

// Params holds the pipeline parameters.
type Params struct {
	// InputDir is the directory containing 2D frames in JPEG format.
	// Frames are sorted by the numeric part of their filenames.
	InputDir string

	// Workers specifies how many goroutines to use for parallel processing.
	Workers int

	// MedianRadius is the radius of the median denoising filter applied to
	// each frame; 0 disables denoising.
	MedianRadius int

	// Threshold is the binarization level in [0, 1] applied to the denoised
	// volume.
	Threshold float64

	// Morphology selects the binary operation applied to the mask:
	// config.MorphNone, config.MorphErode or config.MorphDilate.
	Morphology string

	// MorphologyRadius is the radius of the morphological structuring
	// element.
	MorphologyRadius int

	// HistogramBins is the number of uniform bins used for the reported
	// intensity histogram.
	HistogramBins int

	// SaveIntermediary determines whether to save intermediary processing
	// results as JPEG images.
	SaveIntermediary bool

	// IntermediaryDir is the directory where intermediary results are saved.
	// Only used when SaveIntermediary is true.
	IntermediaryDir string

	// Logger receives progress events.
	Logger zerolog.Logger
}

// Pipeline drives the filtering workflow over a frame stack.
type Pipeline struct {
	params *Params
	log    zerolog.Logger

	// frames holds the loaded input frames in stacking order
	frames []models.Frame

	// width and height store the dimensions of the input frames
	width  int
	height int

	// volume is the denoised volume after stacking
	volume *models.Volume

	// mask is the binary mask after thresholding and morphology
	mask *raster.Raster[bool]

	// metrics stores the measurements computed at the end of a run
	metrics Metrics
}

// New creates a pipeline with the provided parameters.
func New(params *Params) *Pipeline {
	return &Pipeline{
		params: params,
		log:    params.Logger,
	}
}

// Run executes the complete pipeline.
func (p *Pipeline) Run() error {
	// Create intermediary directory if needed
	if p.params.SaveIntermediary {
		if err := os.MkdirAll(p.params.IntermediaryDir, 0755); err != nil {
			return fmt.Errorf("failed to create intermediary directory: %w", err)
		}
	}

	p.log.Info().Str("dir", p.params.InputDir).Msg("loading input frames")
	if err := p.loadFrames(); err != nil {
		return fmt.Errorf("failed to load frames: %w", err)
	}

	if p.params.SaveIntermediary {
		for _, frame := range p.frames {
			if err := p.saveIntermediaryFrame("01_original_frames", frame.Raster, frame.Index); err != nil {
				p.log.Warn().Err(err).Int("frame", frame.Index).Msg("failed to save original frame")
			}
		}
	}

	p.log.Info().Int("radius", p.params.MedianRadius).Msg("denoising frames")
	denoised, err := p.denoiseFrames()
	if err != nil {
		return fmt.Errorf("failed to denoise frames: %w", err)
	}

	if p.params.SaveIntermediary {
		for i, frame := range denoised {
			if err := p.saveIntermediaryFrame("02_denoised_frames", frame, i); err != nil {
				p.log.Warn().Err(err).Int("frame", i).Msg("failed to save denoised frame")
			}
		}
	}

	p.log.Info().Msg("stacking frames into volumes")
	inputVolume, err := stackFrames(frameRasters(p.frames))
	if err != nil {
		return fmt.Errorf("failed to stack input frames: %w", err)
	}
	p.volume, err = stackFrames(denoised)
	if err != nil {
		return fmt.Errorf("failed to stack denoised frames: %w", err)
	}

	p.log.Info().Float64("threshold", p.params.Threshold).Msg("thresholding volume")
	p.mask = thresholdVolume(p.volume.Raster, p.params.Threshold)

	if p.params.Morphology != config.MorphNone && p.params.MorphologyRadius > 0 {
		p.log.Info().
			Str("op", p.params.Morphology).
			Int("radius", p.params.MorphologyRadius).
			Msg("applying morphology")
		p.mask, err = p.applyMorphology(p.mask)
		if err != nil {
			return fmt.Errorf("failed to apply morphology: %w", err)
		}
	}

	if p.params.SaveIntermediary {
		for z := 0; z < p.mask.Extent(2); z++ {
			if err := p.saveIntermediaryFrame("03_mask", maskSliceToRaster(p.mask, z), z); err != nil {
				p.log.Warn().Err(err).Int("slice", z).Msg("failed to save mask slice")
			}
		}
	}

	p.log.Info().Msg("computing metrics")
	if err := p.computeMetrics(inputVolume.Raster, p.volume.Raster, p.mask); err != nil {
		return fmt.Errorf("failed to compute metrics: %w", err)
	}

	p.log.Info().
		Float64("rmse", p.metrics.RMSE).
		Float64("correlation", p.metrics.Correlation).
		Float64("maskFraction", p.metrics.MaskFraction).
		Msg("pipeline finished")

	return nil
}

// denoiseFrames applies the median filter to every frame. Each frame is
// filtered in its own goroutine and results are collected over a channel;
// frame order is restored from the result index.
func (p *Pipeline) denoiseFrames() ([]*raster.Raster[float64], error) {
	if p.params.MedianRadius == 0 {
		return frameRasters(p.frames), nil
	}

	type denoiseResult struct {
		index int
		frame *raster.Raster[float64]
		err   error
	}
	resultChan := make(chan denoiseResult)

	for i := range p.frames {
		go func(index int, src *raster.Raster[float64]) {
			out, err := filter.MedianFilterRadius(src, p.params.MedianRadius, 1)
			resultChan <- denoiseResult{index: index, frame: out, err: err}
		}(i, p.frames[i].Raster)
	}

	denoised := make([]*raster.Raster[float64], len(p.frames))
	for completed := 0; completed < len(p.frames); completed++ {
		res := <-resultChan
		if res.err != nil {
			return nil, fmt.Errorf("frame %d: %w", res.index, res.err)
		}
		denoised[res.index] = res.frame
	}

	return denoised, nil
}

// applyMorphology runs the configured binary operation on the mask
func (p *Pipeline) applyMorphology(mask *raster.Raster[bool]) (*raster.Raster[bool], error) {
	switch p.params.Morphology {
	case config.MorphErode:
		return filter.ErodeRadius(mask, p.params.MorphologyRadius, p.params.Workers)
	case config.MorphDilate:
		return filter.DilateRadius(mask, p.params.MorphologyRadius, p.params.Workers)
	default:
		return nil, fmt.Errorf("unknown morphology operation %q", p.params.Morphology)
	}
}

// Metrics returns the measurements of the last run.
func (p *Pipeline) Metrics() Metrics {
	return p.metrics
}

// Volume returns the denoised volume of the last run.
func (p *Pipeline) Volume() *models.Volume {
	return p.volume
}

// Mask returns the binary mask of the last run.
func (p *Pipeline) Mask() *raster.Raster[bool] {
	return p.mask
}

// frameRasters collects the raster of every frame in order
func frameRasters(frames []models.Frame) []*raster.Raster[float64] {
	rasters := make([]*raster.Raster[float64], len(frames))
	for i := range frames {
		rasters[i] = frames[i].Raster
	}
	return rasters
}

// stackFrames builds a 3D volume from equally shaped 2D frames. Each frame
// occupies one contiguous slab of the volume, so stacking is a straight copy.
func stackFrames(frames []*raster.Raster[float64]) (*models.Volume, error) {
	if len(frames) == 0 {
		return nil, fmt.Errorf("no frames to stack")
	}

	width := frames[0].Extent(0)
	height := frames[0].Extent(1)
	for i, frame := range frames {
		if frame.Rank() != 2 || frame.Extent(0) != width || frame.Extent(1) != height {
			return nil, fmt.Errorf("frame %d has mismatched shape", i)
		}
	}

	vol, err := models.NewVolume(width, height, len(frames))
	if err != nil {
		return nil, err
	}

	size := width * height
	data := vol.Raster.Data()
	for z, frame := range frames {
		copy(data[z*size:(z+1)*size], frame.Data())
	}
	return vol, nil
}

// thresholdVolume builds the binary mask of voxels at or above the level
func thresholdVolume(vol *raster.Raster[float64], level float64) *raster.Raster[bool] {
	mask, _ := raster.New[bool](vol.Shape()...)

	src := vol.Data()
	dst := mask.Data()
	for i, v := range src {
		dst[i] = v >= level
	}
	return mask
}
