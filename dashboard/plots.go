package dashboard

import (
	"fmt"
	"image/color"
	"io"

	"github.com/fogleman/gg"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/samuelfneumann/aiplayground/environment"
)

// cellPixels is the side length of one grid cell in the grid image
const cellPixels = 80

var (
	gridLineColour = color.RGBA{200, 200, 200, 255}
	agentColour    = color.RGBA{31, 119, 180, 255}
	targetColour   = color.RGBA{44, 160, 44, 255}
	obstacleColour = color.RGBA{214, 39, 40, 255}
)

// renderRewards writes an HTML page with a line chart of the per-episode
// rewards to w
func renderRewards(w io.Writer, rewards []float64) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: "Episode Reward",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "Episode"}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Reward"}),
	)

	episodes := make([]string, len(rewards))
	items := make([]opts.LineData, len(rewards))
	for i, r := range rewards {
		episodes[i] = fmt.Sprintf("%d", i+1)
		items[i] = opts.LineData{Value: r}
	}
	line.SetXAxis(episodes).AddSeries("Episode Reward", items)

	page := components.NewPage()
	page.AddCharts(line)
	return page.Render(w)
}

// renderGrid writes a PNG image of the grid to w. The agent, target,
// and obstacles are drawn as circles, with y increasing downward.
func renderGrid(w io.Writer, snap Snapshot) error {
	side := snap.Size * cellPixels
	dc := gg.NewContext(side, side)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	dc.SetColor(gridLineColour)
	dc.SetLineWidth(1.0)
	for i := 0; i <= snap.Size; i++ {
		p := float64(i * cellPixels)
		dc.DrawLine(p, 0, p, float64(side))
		dc.DrawLine(0, p, float64(side), p)
	}
	dc.Stroke()

	circle := func(s environment.State, c color.Color) {
		cx := (float64(s.X) + 0.5) * cellPixels
		cy := (float64(s.Y) + 0.5) * cellPixels
		dc.DrawCircle(cx, cy, 0.3*cellPixels)
		dc.SetColor(c)
		dc.Fill()
	}

	for _, o := range snap.Obstacles {
		circle(o, obstacleColour)
	}
	circle(snap.Target, targetColour)
	circle(snap.Position, agentColour)

	return dc.EncodePNG(w)
}
