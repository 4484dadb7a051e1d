package weights

import (
	"io"
	"strconv"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/pkg/errors"
)

// PlotTrend renders one line per weight index across episodes as an HTML
// chart.
func PlotTrend(rows []TrendRow, w io.Writer) error {
	if len(rows) == 0 {
		return errors.New("no trend rows to plot")
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Weight trend",
			Subtitle: strconv.Itoa(len(rows)) + " decisions",
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	episodes := make([]string, 0, len(rows))
	for _, row := range rows {
		episodes = append(episodes, strconv.Itoa(row.Episode))
	}
	line.SetXAxis(episodes)

	width := len(rows[0].Weights)
	for i := 0; i < width; i++ {
		items := make([]opts.LineData, 0, len(rows))
		for _, row := range rows {
			var value interface{}
			if i < len(row.Weights) {
				value = row.Weights[i]
			}
			items = append(items, opts.LineData{Value: value})
		}
		line.AddSeries("weight_"+strconv.Itoa(i), items)
	}

	return line.Render(w)
}
