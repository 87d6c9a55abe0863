// Package carousel models the news slider: slide index, per-viewport slide
// count, a transition lock that debounces rapid input against the in-flight
// animation, and autoplay pausing/resuming around user interaction.
package carousel

import "time"

// Viewport width breakpoints (px) deciding how many cards one slide shows.
const (
	breakpointSmall  = 768
	breakpointMedium = 1024
)

type Carousel struct {
	current      int
	total        int
	itemCount    int
	perView      int
	settle       time.Duration
	interval     time.Duration
	lockedUntil  time.Time
	nextAutoAt   time.Time
	paused       bool
	now          func() time.Time
}

// New returns a carousel over itemCount cards with the given settle duration
// (transition lock) and autoplay interval, starting at 3 slides per view.
func New(itemCount int, settle, interval time.Duration) *Carousel {
	c := &Carousel{
		itemCount: itemCount,
		perView:   3,
		settle:    settle,
		interval:  interval,
		now:       time.Now,
	}
	c.recompute()
	c.resetAutoplay()
	return c
}

// SetClock overrides the time source. Tests only.
func (c *Carousel) SetClock(now func() time.Time) {
	c.now = now
	c.resetAutoplay()
}

func (c *Carousel) Current() int      { return c.current }
func (c *Carousel) Total() int        { return c.total }
func (c *Carousel) PerView() int      { return c.perView }
func (c *Carousel) Transitioning() bool { return c.now().Before(c.lockedUntil) }

// Next advances one slide, wrapping. No-op while a transition is settling.
func (c *Carousel) Next() {
	if c.Transitioning() || c.total == 0 {
		return
	}
	c.current = (c.current + 1) % c.total
	c.lock()
	c.resetAutoplay()
}

// Prev goes back one slide, wrapping.
func (c *Carousel) Prev() {
	if c.Transitioning() || c.total == 0 {
		return
	}
	c.current = (c.current - 1 + c.total) % c.total
	c.lock()
	c.resetAutoplay()
}

// GoTo jumps to slide i. No-op while settling, out of range, or already there.
func (c *Carousel) GoTo(i int) {
	if c.Transitioning() || i == c.current || i < 0 || i >= c.total {
		return
	}
	c.current = i
	c.lock()
	c.resetAutoplay()
}

// Pause stops autoplay (pointer hover / touch drag).
func (c *Carousel) Pause() { c.paused = true }

// Resume restarts autoplay from a full interval.
func (c *Carousel) Resume() {
	c.paused = false
	c.resetAutoplay()
}

// Tick drives autoplay: when the interval elapsed and autoplay is not paused,
// it advances one slide. Call it from the UI loop.
func (c *Carousel) Tick() {
	if c.paused || c.now().Before(c.nextAutoAt) {
		return
	}
	// bypass the manual-reset in Next so autoplay keeps its cadence
	if !c.Transitioning() && c.total > 0 {
		c.current = (c.current + 1) % c.total
		c.lock()
	}
	c.nextAutoAt = c.now().Add(c.interval)
}

// SetItems updates the card count (after a data refresh) and re-derives the
// slide count, clamping the current slide into range.
func (c *Carousel) SetItems(n int) {
	c.itemCount = n
	c.recompute()
}

// Resize adjusts slides-per-view for the viewport width and clamps the
// current slide into the recomputed range.
func (c *Carousel) Resize(width int) {
	switch {
	case width < breakpointSmall:
		c.perView = 1
	case width < breakpointMedium:
		c.perView = 2
	default:
		c.perView = 3
	}
	c.recompute()
}

// Layout is the slider geometry for each viewport class, sent to the page so
// it can render dots and card widths without re-deriving the breakpoints.
type Layout struct {
	Items        int `json:"items"`
	SlidesSmall  int `json:"slides_small"`  // width < 768
	SlidesMedium int `json:"slides_medium"` // width < 1024
	SlidesLarge  int `json:"slides_large"`
}

func LayoutFor(itemCount int) Layout {
	return Layout{
		Items:        itemCount,
		SlidesSmall:  slideCount(itemCount, 1),
		SlidesMedium: slideCount(itemCount, 2),
		SlidesLarge:  slideCount(itemCount, 3),
	}
}

func slideCount(items, perView int) int {
	if items <= 0 {
		return 0
	}
	return (items + perView - 1) / perView
}

func (c *Carousel) recompute() {
	if c.itemCount <= 0 {
		c.total = 0
		c.current = 0
		return
	}
	c.total = (c.itemCount + c.perView - 1) / c.perView
	if c.current >= c.total {
		c.current = c.total - 1
	}
}

func (c *Carousel) lock() {
	c.lockedUntil = c.now().Add(c.settle)
}

func (c *Carousel) resetAutoplay() {
	c.nextAutoAt = c.now().Add(c.interval)
}
