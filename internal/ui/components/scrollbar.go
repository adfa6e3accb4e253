package components

import (
	"strings"

	"github.com/Akashdeep-Patra/lazyscroll/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// ScrollbarThumb returns the thumb's first row and size on a track of the
// given height, for a viewport of visibleH rows at offset into contentH rows.
// ok is false when everything fits and no scrollbar is needed.
func ScrollbarThumb(height, contentH, visibleH, offset int) (start, size int, ok bool) {
	if contentH <= visibleH || height < 1 || visibleH < 1 {
		return 0, 0, false
	}

	// Thumb size: proportional to visible/total, min 1 row.
	size = height * visibleH / contentH
	if size < 1 {
		size = 1
	}
	if size > height {
		size = height
	}

	maxOffset := contentH - visibleH
	if offset < 0 {
		offset = 0
	}
	if offset > maxOffset {
		offset = maxOffset
	}
	track := height - size
	start = track * offset / maxOffset
	return start, size, true
}

// RenderScrollbar returns a vertical scrollbar track of the given height.
// It returns an empty string if all content fits.
func RenderScrollbar(styles ui.Styles, height, contentH, visibleH, offset int) string {
	thumbStart, thumbSize, ok := ScrollbarThumb(height, contentH, visibleH, offset)
	if !ok {
		return ""
	}

	t := styles.Theme
	thumbStyle := lipgloss.NewStyle().Foreground(t.Primary)
	trackStyle := lipgloss.NewStyle().Foreground(t.Border)

	thumbChar := "█"
	trackChar := "░"

	var b strings.Builder
	b.Grow(height * 4)
	for i := 0; i < height; i++ {
		if i > 0 {
			b.WriteByte('\n')
		}
		if i >= thumbStart && i < thumbStart+thumbSize {
			b.WriteString(thumbStyle.Render(thumbChar))
		} else {
			b.WriteString(trackStyle.Render(trackChar))
		}
	}
	return b.String()
}
