// Package charts renders the survey summaries as PNG images with gonum/plot.
package charts

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Image file names written into the images directory.
const (
	NPSAnalysisFile        = "nps_analysis.png"
	NPSDistributionFile    = "nps_distribution.png"
	ImprovementCloudFile   = "improvement_wordcloud.png"
	TrackImprovementsFile  = "track_improvements.png"
	SessionRankingsFile    = "session_rankings.png"
	LowScorersFile         = "low_scorers_focus.png"
	SessionPopularityFile  = "enhanced_session_popularity.png"
	TrackComparisonFile    = "enhanced_track_comparison.png"
	MotivationAnalysisFile = "enhanced_motivation_analysis.png"
)

var (
	promoterColor  = color.RGBA{R: 0x2e, G: 0xcc, B: 0x71, A: 0xff}
	passiveColor   = color.RGBA{R: 0xf3, G: 0x9c, B: 0x12, A: 0xff}
	detractorColor = color.RGBA{R: 0xe7, G: 0x4c, B: 0x3c, A: 0xff}
	barColor       = color.RGBA{R: 0x34, G: 0x98, B: 0xdb, A: 0xff}
	meanColor      = color.RGBA{R: 0xc0, G: 0x39, B: 0x2b, A: 0xff}

	bucketColors = []color.Color{promoterColor, passiveColor, detractorColor}
)

// Renderer writes charts into Dir.
type Renderer struct {
	Dir string
}

// NewRenderer returns a renderer writing into dir.
func NewRenderer(dir string) *Renderer {
	return &Renderer{Dir: dir}
}

func (r *Renderer) path(name string) (string, error) {
	if err := os.MkdirAll(r.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create images dir: %w", err)
	}
	return filepath.Join(r.Dir, name), nil
}

func newPlot(title string) *plot.Plot {
	p := plot.New()
	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	return p
}

func textStyle(size vg.Length, clr color.Color) text.Style {
	return text.Style{
		Color:   clr,
		Font:    font.From(plot.DefaultFont, size),
		XAlign:  draw.XCenter,
		YAlign:  draw.YCenter,
		Handler: plot.DefaultTextHandler,
	}
}

// message is a plotter that only prints a line of text in the middle of the canvas.
type message string

func (m message) Plot(c draw.Canvas, _ *plot.Plot) {
	center := vg.Point{X: (c.Min.X + c.Max.X) / 2, Y: (c.Min.Y + c.Max.Y) / 2}
	c.FillText(textStyle(vg.Points(16), color.Gray{Y: 0x60}), center, string(m))
}

// placeholder is an axis-less plot showing msg.
func placeholder(title, msg string) *plot.Plot {
	p := newPlot(title)
	p.HideAxes()
	p.Add(message(msg))
	return p
}

// valueLabels annotates bars at (i, v) with their formatted values.
func valueLabels(values []float64, format string, horizontal bool) (*plotter.Labels, error) {
	xys := make(plotter.XYs, len(values))
	labels := make([]string, len(values))
	for i, v := range values {
		if horizontal {
			xys[i] = plotter.XY{X: v, Y: float64(i)}
		} else {
			xys[i] = plotter.XY{X: float64(i), Y: v}
		}
		labels[i] = fmt.Sprintf(format, v)
	}
	l, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, err
	}
	for i := range l.TextStyle {
		l.TextStyle[i].XAlign = draw.XCenter
		if horizontal {
			l.TextStyle[i].XAlign = draw.XLeft
			l.TextStyle[i].YAlign = draw.YCenter
		}
	}
	return l, nil
}

func savePlot(p *plot.Plot, w, h vg.Length, path string) error {
	if err := p.Save(w, h, path); err != nil {
		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}
	return nil
}

// saveGrid draws plots as a rows x cols grid into one PNG.
func saveGrid(rows [][]*plot.Plot, w, h vg.Length, path string) error {
	img := vgimg.New(w, h)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      len(rows),
		Cols:      len(rows[0]),
		PadX:      vg.Millimeter * 8,
		PadY:      vg.Millimeter * 8,
		PadTop:    vg.Millimeter * 4,
		PadBottom: vg.Millimeter * 4,
		PadLeft:   vg.Millimeter * 4,
		PadRight:  vg.Millimeter * 4,
	}
	canvases := plot.Align(rows, tiles, dc)
	for j := range rows {
		for i, p := range rows[j] {
			if p != nil {
				p.Draw(canvases[j][i])
			}
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(f); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// grid lays out n plots in rows of at most cols, padding the last row with
// empty placeholders.
func grid(ps []*plot.Plot, cols int) [][]*plot.Plot {
	if len(ps) < cols {
		cols = len(ps)
	}
	var rows [][]*plot.Plot
	for len(ps) > 0 {
		n := min(cols, len(ps))
		row := append([]*plot.Plot(nil), ps[:n]...)
		for len(row) < cols {
			row = append(row, placeholder("", ""))
		}
		rows = append(rows, row)
		ps = ps[n:]
	}
	return rows
}
