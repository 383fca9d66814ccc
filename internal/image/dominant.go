package imagepkg

import (
	"image"
	"image/color"
	"sort"
)

// DefaultColorQuality samples every tenth pixel.
const DefaultColorQuality = 10

const (
	sigBits     = 5
	rShift      = 8 - sigBits
	histSize    = 1 << (3 * sigBits)
	paletteSize = 5
	minAlpha    = 125
)

// colorBox is an axis-aligned box in the quantised RGB cube.
type colorBox struct {
	lo, hi [3]int
	count  int
}

type histogram struct {
	count [histSize]int
	sum   [histSize][3]int
}

func histIndex(r, g, b int) int {
	return r<<(2*sigBits) | g<<sigBits | b
}

// DominantColor returns the average colour of the most populated box after
// a modified median cut of img into at most five boxes. Every quality-th
// pixel is sampled; pixels with alpha below 125 are ignored. An image with no
// usable pixel yields opaque black.
func DominantColor(img image.Image, quality int) color.NRGBA {
	if quality < 1 {
		quality = 1
	}
	h, box, ok := buildHistogram(img, quality)
	if !ok {
		return color.NRGBA{A: 255}
	}

	boxes := medianCut(h, box, paletteSize)
	sort.SliceStable(boxes, func(i, j int) bool { return boxes[i].count > boxes[j].count })
	return boxAverage(h, boxes[0])
}

func buildHistogram(img image.Image, quality int) (*histogram, colorBox, bool) {
	h := &histogram{}
	box := colorBox{lo: [3]int{31, 31, 31}}
	b := img.Bounds()
	n := b.Dx() * b.Dy()

	for i := 0; i < n; i += quality {
		x := b.Min.X + i%b.Dx()
		y := b.Min.Y + i/b.Dx()
		c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
		if c.A < minAlpha {
			continue
		}
		q := [3]int{int(c.R) >> rShift, int(c.G) >> rShift, int(c.B) >> rShift}
		idx := histIndex(q[0], q[1], q[2])
		h.count[idx]++
		h.sum[idx][0] += int(c.R)
		h.sum[idx][1] += int(c.G)
		h.sum[idx][2] += int(c.B)
		for ch := range q {
			box.lo[ch] = min(box.lo[ch], q[ch])
			box.hi[ch] = max(box.hi[ch], q[ch])
		}
		box.count++
	}
	return h, box, box.count > 0
}

// medianCut repeatedly splits the most populated splittable box along its
// longest axis at the population median.
func medianCut(h *histogram, first colorBox, target int) []colorBox {
	boxes := []colorBox{first}
	for len(boxes) < target {
		best := -1
		for i, bx := range boxes {
			if bx.count > 1 && bx.volume() > 1 && (best < 0 || bx.count > boxes[best].count) {
				best = i
			}
		}
		if best < 0 {
			break
		}
		a, b, ok := splitBox(h, boxes[best])
		if !ok {
			break
		}
		boxes[best] = a
		boxes = append(boxes, b)
	}
	return boxes
}

func (bx colorBox) volume() int {
	v := 1
	for ch := range bx.lo {
		v *= bx.hi[ch] - bx.lo[ch] + 1
	}
	return v
}

func splitBox(h *histogram, bx colorBox) (colorBox, colorBox, bool) {
	axis := 0
	for ch := 1; ch < 3; ch++ {
		if bx.hi[ch]-bx.lo[ch] > bx.hi[axis]-bx.lo[axis] {
			axis = ch
		}
	}
	if bx.hi[axis] == bx.lo[axis] {
		return bx, bx, false
	}

	// population of each slice along the axis
	slices := make([]int, bx.hi[axis]-bx.lo[axis]+1)
	bx.each(h, func(q [3]int, n int) {
		slices[q[axis]-bx.lo[axis]] += n
	})

	half, acc, cut := bx.count/2, 0, bx.lo[axis]
	for i, n := range slices {
		acc += n
		cut = bx.lo[axis] + i
		if acc >= half {
			break
		}
	}
	if cut >= bx.hi[axis] {
		cut = bx.hi[axis] - 1
	}

	a, b := bx, bx
	a.hi[axis] = cut
	b.lo[axis] = cut + 1
	a.count = a.population(h)
	b.count = bx.count - a.count
	if a.count == 0 || b.count == 0 {
		return bx, bx, false
	}
	return a, b, true
}

func (bx colorBox) each(h *histogram, fn func(q [3]int, n int)) {
	for r := bx.lo[0]; r <= bx.hi[0]; r++ {
		for g := bx.lo[1]; g <= bx.hi[1]; g++ {
			for b := bx.lo[2]; b <= bx.hi[2]; b++ {
				if n := h.count[histIndex(r, g, b)]; n > 0 {
					fn([3]int{r, g, b}, n)
				}
			}
		}
	}
}

func (bx colorBox) population(h *histogram) int {
	total := 0
	bx.each(h, func(_ [3]int, n int) { total += n })
	return total
}

func boxAverage(h *histogram, bx colorBox) color.NRGBA {
	var sum [3]int
	bx.each(h, func(q [3]int, _ int) {
		s := h.sum[histIndex(q[0], q[1], q[2])]
		sum[0] += s[0]
		sum[1] += s[1]
		sum[2] += s[2]
	})
	return color.NRGBA{
		R: uint8(sum[0] / bx.count),
		G: uint8(sum[1] / bx.count),
		B: uint8(sum[2] / bx.count),
		A: 255,
	}
}
