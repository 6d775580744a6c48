package charts

import (
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/vnkhanh/survey-insights/analysis"
)

const (
	minWordSize = 10
	maxWordSize = 40
)

// wordCloud lays words out in centered rows, sized by frequency.
// Words are expected most frequent first.
type wordCloud []analysis.CategoryCount

type placedWord struct {
	word  string
	style text.Style
	width vg.Length
}

func (wc wordCloud) Plot(c draw.Canvas, _ *plot.Plot) {
	if len(wc) == 0 {
		return
	}
	top := 0
	for _, w := range wc {
		top = max(top, w.Mentions)
	}

	width := c.Max.X - c.Min.X
	gap := vg.Points(8)

	var rows [][]placedWord
	var row []placedWord
	var used vg.Length
	for i, w := range wc {
		size := minWordSize + (maxWordSize-minWordSize)*float64(w.Mentions)/float64(top)
		sty := textStyle(vg.Points(size), plotutil.Color(i))
		pw := placedWord{word: w.Category, style: sty, width: sty.Width(w.Category)}
		if len(row) > 0 && used+pw.width > width {
			rows = append(rows, row)
			row, used = nil, 0
		}
		row = append(row, pw)
		used += pw.width + gap
	}
	rows = append(rows, row)

	heights := make([]vg.Length, len(rows))
	var total vg.Length
	for i, r := range rows {
		for _, pw := range r {
			heights[i] = max(heights[i], pw.style.Height(pw.word))
		}
		total += heights[i] + gap
	}

	y := (c.Min.Y+c.Max.Y)/2 + total/2
	for i, r := range rows {
		var rowWidth vg.Length
		for _, pw := range r {
			rowWidth += pw.width + gap
		}
		x := (c.Min.X+c.Max.X)/2 - rowWidth/2
		y -= heights[i] / 2
		for _, pw := range r {
			c.FillText(pw.style, vg.Point{X: x + pw.width/2, Y: y}, pw.word)
			x += pw.width + gap
		}
		y -= heights[i]/2 + gap
	}
}

// cloudPlot is an axis-less word cloud, or a placeholder when words is empty.
func cloudPlot(title string, words []analysis.CategoryCount) *plot.Plot {
	if len(words) == 0 {
		return placeholder(title, "No specific improvements")
	}
	p := newPlot(title)
	p.HideAxes()
	p.BackgroundColor = color.White
	p.Add(wordCloud(analysis.SortByMentions(words)))
	return p
}
