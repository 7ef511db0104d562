package tui

var sparkBlocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// History keeps the last samples of a value in a fixed-size ring.
type History struct {
	data  []float64
	head  int
	count int
}

func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = 1
	}
	return &History{data: make([]float64, capacity)}
}

// Push appends v, evicting the oldest sample when full.
func (h *History) Push(v float64) {
	h.data[h.head] = v
	h.head = (h.head + 1) % len(h.data)
	if h.count < len(h.data) {
		h.count++
	}
}

func (h *History) Len() int { return h.count }

// Values returns samples oldest first.
func (h *History) Values() []float64 {
	out := make([]float64, h.count)
	start := (h.head - h.count + len(h.data)) % len(h.data)
	for i := range h.count {
		out[i] = h.data[(start+i)%len(h.data)]
	}
	return out
}

// Sparkline renders values against a fixed ceiling; values above it use
// the tallest block.
func Sparkline(values []float64, ceiling float64) string {
	if len(values) == 0 || ceiling <= 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		idx := int(v / ceiling * float64(len(sparkBlocks)-1))
		idx = max(0, min(idx, len(sparkBlocks)-1))
		runes[i] = sparkBlocks[idx]
	}
	return string(runes)
}
