package search

// Cursor is the single selected-index over the flattened list. The index is
// -1 while the list is empty and clamped to [0, n-1] otherwise.
type Cursor struct {
	index int
}

// NewCursor returns a cursor in the empty state.
func NewCursor() Cursor { return Cursor{index: -1} }

// Index returns the selected index, -1 when nothing is selectable.
func (c Cursor) Index() int { return c.index }

// Reset moves the cursor to the top of a list of n items.
func (c *Cursor) Reset(n int) {
	if n <= 0 {
		c.index = -1
		return
	}
	c.index = 0
}

// Clamp re-fits the cursor after the list length changed to n.
func (c *Cursor) Clamp(n int) {
	switch {
	case n <= 0:
		c.index = -1
	case c.index < 0:
		c.index = 0
	case c.index >= n:
		c.index = n - 1
	}
}

// Down moves one item down.
func (c *Cursor) Down(n int) {
	if n <= 0 {
		return
	}
	if c.index < n-1 {
		c.index++
	}
	if c.index < 0 {
		c.index = 0
	}
}

// Up moves one item up.
func (c *Cursor) Up(n int) {
	if n <= 0 {
		return
	}
	if c.index > 0 {
		c.index--
	}
	if c.index < 0 {
		c.index = 0
	}
}

// JumpDown moves to the first section start strictly below the cursor, or
// the last item when none exists. With no boundaries it acts like Down.
func (c *Cursor) JumpDown(starts []int, n int) {
	if n <= 0 {
		return
	}
	if len(starts) == 0 {
		c.Down(n)
		return
	}
	for _, s := range starts {
		if s > c.index {
			c.index = s
			return
		}
	}
	c.index = n - 1
}

// JumpUp moves to the start of the current section, or when already on a
// boundary, to the start of the previous section (0 from the first one).
// With no boundaries it acts like Up.
func (c *Cursor) JumpUp(starts []int, n int) {
	if n <= 0 {
		return
	}
	if len(starts) == 0 {
		c.Up(n)
		return
	}
	start := starts[0]
	pos := 0
	for i, s := range starts {
		if s > c.index {
			break
		}
		start = s
		pos = i
	}
	if start < c.index {
		c.index = start
		return
	}
	if pos > 0 {
		c.index = starts[pos-1]
		return
	}
	c.index = 0
}
