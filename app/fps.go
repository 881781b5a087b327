package app

import (
	"math"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// FPSInterval is how often, in seconds, frame rates are published.
const FPSInterval = 1.0

var printer = message.NewPrinter(language.English)

// FPSCounter counts frames over FPSInterval.
type FPSCounter struct {
	frames  int
	elapsed float32
}

// Frame records one rendered frame.
func (c *FPSCounter) Frame() { c.frames++ }

// Advance adds dt seconds. Once at least FPSInterval has passed it returns
// the frame rate over the interval and starts a new one.
func (c *FPSCounter) Advance(dt float32) (fps float64, ok bool) {
	c.elapsed += dt
	if c.elapsed < FPSInterval {
		return 0, false
	}
	fps = float64(c.frames) / float64(c.elapsed)
	c.frames, c.elapsed = 0, 0
	return fps, true
}

// FormatFPS formats a frame rate as a whole number with digit grouping.
func FormatFPS(fps float64) string {
	return printer.Sprintf("%d", int(math.Round(fps)))
}

// FormatTitle expands the {title}, {backend} and {fps} placeholders of tmpl.
func FormatTitle(tmpl, title, backendName string, fps float64) string {
	return strings.NewReplacer(
		"{title}", title,
		"{backend}", backendName,
		"{fps}", FormatFPS(fps),
	).Replace(tmpl)
}
