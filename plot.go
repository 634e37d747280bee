package svy

import (
	"fmt"
	"strings"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
	"github.com/MetalBlueberry/go-plotly/offline"
)

type Plot struct {
	Fig *grob.Fig
	Lay *grob.Layout
}

type Opt func(plot *Plot) *Plot

func NewPlot(opt ...Opt) *Plot {
	fig := &grob.Fig{}
	lay := &grob.Layout{}
	fig.Layout = lay
	p := &Plot{Fig: fig, Lay: lay}
	for _, o := range opt {
		o(p)
	}

	return p
}

func WithWidth(w float64) Opt {
	if w < 0.0 {
		panic(fmt.Errorf("negative width"))
	}
	return func(p *Plot) *Plot {
		p.Lay.Width = w
		return p
	}
}

func WithHeight(h float64) Opt {
	if h < 0.0 {
		panic(fmt.Errorf("negative height"))
	}
	return func(p *Plot) *Plot {
		p.Lay.Height = h
		return p
	}
}

func WithTitle(title string) Opt {
	return func(p *Plot) *Plot { p.Lay.Title = &grob.LayoutTitle{Text: title}; return p }
}

func WithLegend(show bool) Opt {
	return func(p *Plot) *Plot {
		if show {
			p.Lay.Showlegend = grob.True
		} else {
			p.Lay.Showlegend = grob.False
		}

		return p
	}
}

func WithXlabel(label string) Opt {
	return func(p *Plot) *Plot {
		if p.Lay.Xaxis == nil {
			p.Lay.Xaxis = &grob.LayoutXaxis{}
		}

		if p.Lay.Xaxis.Title == nil {
			p.Lay.Xaxis.Title = &grob.LayoutXaxisTitle{}
		}

		p.Lay.Xaxis.Title.Text = label
		return p
	}
}

func WithYlabel(label string) Opt {
	return func(p *Plot) *Plot {
		if p.Lay.Yaxis == nil {
			p.Lay.Yaxis = &grob.LayoutYaxis{}
		}
		if p.Lay.Yaxis.Title == nil {
			p.Lay.Yaxis.Title = &grob.LayoutYaxisTitle{}
		}

		p.Lay.Yaxis.Title.Text = label
		return p
	}
}

// PlotBars adds one bar trace per series to the plot from a one- or two-key
// estimate table. For a one-key table there is a single unnamed series over
// the key values; for a two-key table the first key names the series and
// the second runs along the x axis. Error bars carry each estimate's margin
// of error. Unknown estimates are skipped -- a gap, not a zero bar.
func (p *Plot) PlotBars(t *Table) error {
	nk := len(t.KeyNames())
	if nk < 1 || nk > 2 {
		return fmt.Errorf("bar charts take 1 or 2 key columns, table has %d", nk)
	}

	type series struct {
		x    []string
		y    []float64
		moes []float64
	}

	byName := make(map[string]*series)

	var names []string
	for _, r := range t.Rows() {
		if !r.Est.Known {
			continue
		}

		name, x := "", r.Keys[0]
		if nk == 2 {
			name, x = r.Keys[0], r.Keys[1]
		}

		s, ok := byName[name]
		if !ok {
			s = &series{}
			byName[name] = s
			names = append(names, name)
		}

		s.x = append(s.x, x)
		s.y = append(s.y, r.Est.Point)
		s.moes = append(s.moes, r.Est.MOE())
	}

	if names == nil {
		return fmt.Errorf("no known estimates to plot")
	}

	for _, name := range names {
		s := byName[name]
		tr := &grob.Bar{
			Name: name,
			X:    s.x,
			Y:    s.y,
			ErrorY: &grob.BarErrorY{
				Array:   s.moes,
				Visible: grob.True,
			},
		}

		p.Fig.AddTraces(tr)
	}

	return nil
}

// PlotXY adds a line trace.
func (p *Plot) PlotXY(x, y []float64, seriesName, color string) error {
	if len(x) != len(y) {
		return fmt.Errorf("xy plots require equal lengths")
	}

	tr := &grob.Scatter{Name: seriesName, X: x, Y: y,
		Mode: grob.ScatterModeLines, Line: &grob.ScatterLine{Color: color}}

	p.Fig.AddTraces(tr)

	return nil
}

// Save writes the figure as standalone html.
func (p *Plot) Save(fileName string) error {
	if !strings.HasSuffix(fileName, ".html") {
		fileName += ".html"
	}

	offline.ToHtml(p.Fig, fileName)

	return nil
}
