package orgchart

// DepthControl holds a depth limit clamped to [0, Max].
//
// The maximum comes from the loaded tree ([org.Tree.MaxDepth]) and changes
// only when data is reloaded. Every transition clamps; none fail.
type DepthControl struct {
	limit int
	max   int
}

// NewDepthControl returns a control with the given maximum and initial
// limit. A negative initial limit selects [DefaultDepthLimit].
func NewDepthControl(maxDepth, initial int) *DepthControl {
	d := &DepthControl{max: max(maxDepth, 0)}
	if initial < 0 {
		initial = DefaultDepthLimit
	}
	d.Set(initial)
	return d
}

// Limit returns the current depth limit.
func (d *DepthControl) Limit() int { return d.limit }

// Max returns the maximum depth limit.
func (d *DepthControl) Max() int { return d.max }

// Increment raises the limit by one, up to Max.
func (d *DepthControl) Increment() int { return d.Set(d.limit + 1) }

// Decrement lowers the limit by one, down to 0.
func (d *DepthControl) Decrement() int { return d.Set(d.limit - 1) }

// Set sets the limit to n clamped into [0, Max] and returns the result.
func (d *DepthControl) Set(n int) int {
	d.limit = Clamp(n, d.max)
	return d.limit
}

// SetMax replaces the maximum after a data reload and re-clamps the limit.
func (d *DepthControl) SetMax(maxDepth int) {
	d.max = max(maxDepth, 0)
	d.Set(d.limit)
}

// Clamp returns n clamped into [0, maxDepth].
func Clamp(n, maxDepth int) int {
	return min(max(n, 0), max(maxDepth, 0))
}
