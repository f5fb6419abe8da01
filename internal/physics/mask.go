package physics

import (
	"math"
	"math/bits"
	"sort"
)

// Mask is a 1-bit-per-pixel collision shape. Pixel (0,0) is the top-left of
// the owning entity's bounding box.
type Mask struct {
	w, h   int
	stride int // uint64 words per row
	bits   []uint64
}

// NewMask creates an empty w×h mask.
func NewMask(w, h int) *Mask {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	stride := (w + 63) / 64
	return &Mask{
		w:      w,
		h:      h,
		stride: stride,
		bits:   make([]uint64, stride*h),
	}
}

// FilledMask creates a w×h mask with every pixel set.
func FilledMask(w, h int) *Mask {
	m := NewMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y)
		}
	}
	return m
}

// PolygonMask rasterizes a polygon into a w×h mask. Points are relative to
// the mask center; pixels are sampled at their centers (even-odd rule).
func PolygonMask(w, h int, points []Vec) *Mask {
	m := NewMask(w, h)
	if len(points) < 3 {
		return m
	}

	cx, cy := float64(w)/2, float64(h)/2
	var xs []float64
	n := len(points)

	for y := 0; y < h; y++ {
		scanY := float64(y) + 0.5 - cy
		xs = xs[:0]
		for i := 0; i < n; i++ {
			p1 := points[i]
			p2 := points[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X)+cx)
			}
		}
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			start := int(math.Ceil(xs[i] - 0.5))
			end := int(math.Floor(xs[i+1] - 0.5))
			for x := start; x <= end; x++ {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Width in pixels.
func (m *Mask) Width() int { return m.w }

// Height in pixels.
func (m *Mask) Height() int { return m.h }

// Set marks pixel (x, y). Out-of-range pixels are ignored.
func (m *Mask) Set(x, y int) {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return
	}
	m.bits[y*m.stride+x/64] |= 1 << uint(x%64)
}

// Get reports whether pixel (x, y) is set. Out-of-range pixels are unset.
func (m *Mask) Get(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.bits[y*m.stride+x/64]&(1<<uint(x%64)) != 0
}

// Count returns the number of set pixels.
func (m *Mask) Count() int {
	total := 0
	for _, word := range m.bits {
		total += bits.OnesCount64(word)
	}
	return total
}

// Rotate returns a new mask turned counterclockwise by deg degrees around its
// center. The result grows to the rotated bounding box, like a rotated sprite.
// Any angle is accepted; the transform is periodic.
func (m *Mask) Rotate(deg float64) *Mask {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	fw, fh := float64(m.w), float64(m.h)

	// Trim float noise so 0°/90°/180° keep exact sizes.
	nw := int(math.Ceil(math.Abs(fw*cos)+math.Abs(fh*sin)-1e-9))
	nh := int(math.Ceil(math.Abs(fw*sin)+math.Abs(fh*cos)-1e-9))
	out := NewMask(nw, nh)

	ncx, ncy := float64(nw)/2, float64(nh)/2
	cx, cy := fw/2, fh/2

	for y := 0; y < nh; y++ {
		dy := float64(y) + 0.5 - ncy
		for x := 0; x < nw; x++ {
			dx := float64(x) + 0.5 - ncx
			// Inverse of Vec.Rotate: map the destination pixel back into the source.
			sx := dx*cos - dy*sin + cx
			sy := dx*sin + dy*cos + cy
			if m.Get(int(math.Floor(sx)), int(math.Floor(sy))) {
				out.Set(x, y)
			}
		}
	}
	return out
}

// Overlap reports whether any set pixel of m coincides with a set pixel of
// other when other's top-left sits at (dx, dy) in m's coordinates.
func (m *Mask) Overlap(other *Mask, dx, dy int) bool {
	x0 := max(0, dx)
	y0 := max(0, dy)
	x1 := min(m.w, dx+other.w)
	y1 := min(m.h, dy+other.h)

	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			if m.Get(x, y) && other.Get(x-dx, y-dy) {
				return true
			}
		}
	}
	return false
}
