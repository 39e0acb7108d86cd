package svgregion

import "fmt"

const (
	MinScale     = 5     // percent
	MaxScale     = 10000 // percent
	DefaultScale = 100   // percent
)

// ClampScale restricts a scale percentage to [MinScale, MaxScale].
func ClampScale(percent int) int {
	if percent < MinScale {
		return MinScale
	}
	if percent > MaxScale {
		return MaxScale
	}
	return percent
}

// Size is a pixel size.
type Size struct{ W, H int }

func (s Size) String() string { return fmt.Sprintf("%dx%d", s.W, s.H) }

// Empty reports whether s has no area.
func (s Size) Empty() bool { return s.W <= 0 || s.H <= 0 }

// ScaleKeepAspect scales s by percent/100. Both dimensions are first
// scaled (and truncated) independently; the result is then the largest
// size with the aspect ratio of s fitting in that target, so that the
// smaller resulting dimension governs.
func (s Size) ScaleKeepAspect(percent int) Size {
	target := Size{W: s.W * percent / 100, H: s.H * percent / 100}
	if s.W == 0 || s.H == 0 {
		return target
	}
	if rw := int(int64(target.H) * int64(s.W) / int64(s.H)); rw <= target.W {
		return Size{W: rw, H: target.H}
	}
	return Size{W: target.W, H: int(int64(target.W) * int64(s.H) / int64(s.W))}
}
