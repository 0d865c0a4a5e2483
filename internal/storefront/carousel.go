package storefront

import (
	"context"
	"sync"
	"time"
)

// DefaultCarouselInterval is the autoplay period of the hero carousel.
const DefaultCarouselInterval = 5 * time.Second

// Carousel tracks the active hero slide. The active dot always follows the
// active slide.
type Carousel struct {
	mu      sync.Mutex
	slides  int
	current int
}

func NewCarousel(slides int) *Carousel {
	if slides < 0 {
		slides = 0
	}
	return &Carousel{slides: slides}
}

func (c *Carousel) Len() int { return c.slides }

// Current returns the active slide index.
func (c *Carousel) Current() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// GoTo activates slide idx, wrapping in both directions. It does nothing when
// there are no slides.
func (c *Carousel) GoTo(idx int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goTo(idx)
}

// Next advances one slide; the read and the move happen under one lock.
func (c *Carousel) Next() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.goTo(c.current + 1)
}

func (c *Carousel) goTo(idx int) int {
	if c.slides == 0 {
		return c.current
	}
	c.current = ((idx % c.slides) + c.slides) % c.slides
	return c.current
}

// Run advances the carousel every interval until ctx is done. onChange, when
// set, receives each new index.
func (c *Carousel) Run(ctx context.Context, interval time.Duration, onChange func(int)) {
	if interval <= 0 {
		interval = DefaultCarouselInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			idx := c.Next()
			if onChange != nil {
				onChange(idx)
			}
		}
	}
}
