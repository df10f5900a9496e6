package ecg

import "math"

// beatFeatures summarizes a min-max normalized beat window.
type beatFeatures struct {
	jitter    float64 // RMS of successive differences, the morphology roughness
	peakCount int     // local maxima above the peak threshold
}

const peakThreshold = 0.7

// normalize rescales the window to [0, 1]. A flat window (zero range)
// returns ok=false; it carries no morphology to classify.
func normalize(signal []float64) ([]float64, bool) {
	min, max := signal[0], signal[0]
	for _, v := range signal[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		return nil, false
	}

	scaled := make([]float64, len(signal))
	for i, v := range signal {
		scaled[i] = (v - min) / (max - min)
	}
	return scaled, true
}

// extractFeatures computes roughness and peak statistics over a
// normalized window.
func extractFeatures(normalized []float64) beatFeatures {
	var sumSq float64
	for i := 1; i < len(normalized); i++ {
		d := normalized[i] - normalized[i-1]
		sumSq += d * d
	}
	jitter := math.Sqrt(sumSq / float64(len(normalized)-1))

	peaks := 0
	for i := 1; i < len(normalized)-1; i++ {
		if normalized[i] > peakThreshold &&
			normalized[i] >= normalized[i-1] && normalized[i] > normalized[i+1] {
			peaks++
		}
	}

	return beatFeatures{jitter: jitter, peakCount: peaks}
}
