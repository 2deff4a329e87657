package tui

import (
	"fmt"
	"strings"
)

type chartPoint struct {
	Label string
	Value float64
	Text  string
}

// barChart renders a horizontal bar per point. Bars scale against the largest
// magnitude so negative values (cash outflows) keep a visible bar.
func barChart(title string, points []chartPoint, width int) string {
	if width <= 0 {
		width = 80
	}
	if len(points) == 0 {
		return title + "\n" + dimStyle.Render("(no data)")
	}
	maxMag := 0.0
	labelW, textW := 0, 0
	for _, p := range points {
		if v := p.Value; v < 0 {
			v = -v
			if v > maxMag {
				maxMag = v
			}
		} else if v > maxMag {
			maxMag = v
		}
		if len(p.Label) > labelW {
			labelW = len(p.Label)
		}
		if len(p.Text) > textW {
			textW = len(p.Text)
		}
	}
	if maxMag <= 0 {
		maxMag = 1
	}
	barW := width - labelW - textW - 4
	if barW < 8 {
		barW = 8
	}
	lines := []string{title}
	for _, p := range points {
		mag := p.Value
		ch := "#"
		if mag < 0 {
			mag = -mag
			ch = "-"
		}
		n := int(mag / maxMag * float64(barW))
		if n < 1 {
			n = 1
		}
		lines = append(lines, fmt.Sprintf("%-*s %s %s", labelW, p.Label, strings.Repeat(ch, n), p.Text))
	}
	return strings.Join(lines, "\n")
}
