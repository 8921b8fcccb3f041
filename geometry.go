package carousel

import "math"

// Cover-fit arithmetic shared by the background and photo compositors.
//
// An image covers a target rectangle when it is scaled, preserving aspect
// ratio, so that both dimensions are at least the target's; the excess is
// cropped. The canvas aspect ratio is 1080:1350 = 0.8.

// coverFitSize returns the dimensions an srcW x srcH image must be resized
// to so that, after applying zoom, it still covers targetW x targetH with
// no gaps. Zoom below 1 is treated as 1.
func coverFitSize(srcW, srcH, targetW, targetH int, zoom float64) (int, int) {
	if srcW <= 0 || srcH <= 0 || targetW <= 0 || targetH <= 0 {
		return targetW, targetH
	}
	if zoom < 1 {
		zoom = 1
	}

	imgRatio := float64(srcW) / float64(srcH)
	targetRatio := float64(targetW) / float64(targetH)

	var w, h float64
	if imgRatio > targetRatio {
		// Image is relatively wider: fit height, let width overflow.
		h = float64(targetH)
		w = h * imgRatio
	} else {
		w = float64(targetW)
		h = w / imgRatio
	}
	w *= zoom
	h *= zoom

	// Rounding can leave a dimension just under the target; rescale
	// isotropically so cover-fit never leaves gaps.
	if w < float64(targetW) || h < float64(targetH) {
		s := math.Max(float64(targetW)/w, float64(targetH)/h)
		w *= s
		h *= s
	}

	rw := int(math.Round(w))
	rh := int(math.Round(h))
	if rw < targetW {
		rw = targetW
	}
	if rh < targetH {
		rh = targetH
	}
	return rw, rh
}

// cropOffset maps a pan percentage onto the available slack between a
// resized dimension and its target: 0 shows the left/top edge, 100 the
// right/bottom edge, 50 is centered.
func cropOffset(resized, target int, percent float64) int {
	slack := resized - target
	if slack <= 0 {
		return 0
	}
	return int(math.Round(clampPercent(percent) / 100 * float64(slack)))
}

// clampPercent clamps v to [0, 100].
func clampPercent(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
