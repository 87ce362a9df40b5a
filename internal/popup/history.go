package popup

// History is a fixed-size ring of samples, oldest first.
type History struct {
	buf  []float64
	head int
	n    int
}

func NewHistory(size int) *History {
	if size < 1 {
		size = 1
	}
	return &History{buf: make([]float64, size)}
}

func (h *History) Push(v float64) {
	h.buf[(h.head+h.n)%len(h.buf)] = v
	if h.n < len(h.buf) {
		h.n++
	} else {
		h.head = (h.head + 1) % len(h.buf)
	}
}

func (h *History) Len() int { return h.n }

// Values returns the samples, oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, h.n)
	for i := range out {
		out[i] = h.buf[(h.head+i)%len(h.buf)]
	}
	return out
}

// Points scales the samples into r. The newest sample is at the right edge
// and each sample is one step of r.Width/(capacity-1) pixels to the left of
// the next. A value of max, or more, is drawn at the top edge; a max of zero
// or less scales to the largest sample.
func (h *History) Points(r Rect, max float64) []Point {
	vs := h.Values()
	if len(vs) == 0 || r.Width <= 0 || r.Height <= 0 {
		return nil
	}
	if max <= 0 {
		for _, v := range vs {
			if v > max {
				max = v
			}
		}
		if max <= 0 {
			max = 1
		}
	}
	steps := len(h.buf) - 1
	if steps < 1 {
		steps = 1
	}
	bottom := r.Y + r.Height - 1
	right := r.X + r.Width - 1
	pts := make([]Point, len(vs))
	for i, v := range vs {
		if v < 0 {
			v = 0
		} else if v > max {
			v = max
		}
		back := len(vs) - 1 - i
		pts[i] = Point{
			X: right - back*(r.Width-1)/steps,
			Y: bottom - int(v/max*float64(r.Height-1)),
		}
	}
	return pts
}
