package renderer

import "time"

// RenderStats contains statistics about the rendering process
type RenderStats struct {
	TotalPixels     int           // Pixels in the image
	RenderedPixels  int           // Pixels actually rendered
	RowsRendered    int           // Scan lines completed
	SamplesPerPixel int           // Samples taken per rendered pixel
	TotalSamples    int           // Total number of camera rays traced
	Workers         int           // Number of workers used
	Duration        time.Duration // Wall-clock render time
	SamplesPerSec   float64       // Camera rays per second
}

func newRenderStats(width, height, samplesPerPixel, workers int) RenderStats {
	return RenderStats{
		TotalPixels:     width * height,
		SamplesPerPixel: samplesPerPixel,
		Workers:         workers,
	}
}

// addRow records a completed scan line
func (s *RenderStats) addRow(width int) {
	s.RowsRendered++
	s.RenderedPixels += width
	s.TotalSamples += width * s.SamplesPerPixel
}

// finalize derives throughput once rendering is over
func (s *RenderStats) finalize() {
	if seconds := s.Duration.Seconds(); seconds > 0 {
		s.SamplesPerSec = float64(s.TotalSamples) / seconds
	}
}

// Complete reports whether every pixel was rendered
func (s RenderStats) Complete() bool {
	return s.RenderedPixels == s.TotalPixels
}
