package tile

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Overflows reports whether text needs more than width terminal cells.
// Wide runes such as CJK count as two cells.
func Overflows(text string, width int) bool {
	return runewidth.StringWidth(text) > width
}

// Marquee scrolls text that does not fit its container. The content is
// duplicated back to back, separated by a gap, so the loop is seamless.
type Marquee struct {
	Text  string
	Width int
	Gap   int
}

// NewMarquee creates a marquee with a three-cell gap.
func NewMarquee(text string, width int) Marquee {
	return Marquee{Text: text, Width: width, Gap: 3}
}

// Scrolling reports whether the marquee animates at all.
func (m Marquee) Scrolling() bool { return Overflows(m.Text, m.Width) }

// Loop returns the duplicated content the frames are cut from.
func (m Marquee) Loop() string {
	unit := m.Text + strings.Repeat(" ", m.Gap)
	return unit + unit
}

// Frame returns the visible window at animation step. Text that fits is
// returned padded and never moves.
func (m Marquee) Frame(step int) string {
	if !m.Scrolling() {
		return runewidth.FillRight(m.Text, m.Width)
	}
	unit := []rune(m.Text + strings.Repeat(" ", m.Gap))
	if step < 0 {
		step = -step
	}
	start := step % len(unit)
	loop := append(append([]rune{}, unit[start:]...), unit...)

	var b strings.Builder
	w := 0
	for _, r := range loop {
		rw := runewidth.RuneWidth(r)
		if w+rw > m.Width {
			break
		}
		b.WriteRune(r)
		w += rw
	}
	return runewidth.FillRight(b.String(), m.Width)
}
