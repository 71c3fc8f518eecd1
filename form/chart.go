/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package form

import (
	"bytes"
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/humaidq/clinitrend/analysis"
)

// renderTrendChart draws the parameter's values with its normal range as
// dashed mark lines.
func renderTrendChart(title string, info analysis.ParameterAnalysis) (template.HTML, error) {
	if len(info.Trend.Values) == 0 {
		return "", nil
	}

	yData := make([]opts.LineData, 0, len(info.Trend.Values))
	dataMin, dataMax := info.Trend.Values[0], info.Trend.Values[0]

	for _, v := range info.Trend.Values {
		yData = append(yData, opts.LineData{Value: v})

		if v < dataMin {
			dataMin = v
		}
		if v > dataMax {
			dataMax = v
		}
	}

	// Keep the normal range visible with 10% padding, widening for outliers
	low, high := info.NormalRange.Low(), info.NormalRange.High()
	padding := (high - low) * 0.1
	yMin := min(low-padding, dataMin-padding)
	yMax := max(high+padding, dataMax+padding)

	if yMin < 0 && dataMin >= 0 {
		yMin = 0
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show: opts.Bool(true),
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(false),
		}),
		charts.WithYAxisOpts(opts.YAxis{
			Min: yMin,
			Max: yMax,
		}),
	)

	markLines := []interface{}{
		opts.MarkLineNameYAxisItem{Name: "Normal Min", YAxis: low},
		opts.MarkLineNameYAxisItem{Name: "Normal Max", YAxis: high},
	}

	line.SetXAxis(info.Trend.Dates).
		AddSeries(title, yData).
		SetSeriesOptions(
			charts.WithLineChartOpts(opts.LineChart{
				Smooth:     opts.Bool(true),
				ShowSymbol: opts.Bool(true),
			}),
			func(s *charts.SingleSeries) {
				s.MarkLines = &opts.MarkLines{
					Data: markLines,
					MarkLineStyle: opts.MarkLineStyle{
						Symbol: []string{"none", "none"},
						LineStyle: &opts.LineStyle{
							Color: "rgba(128, 128, 128, 0.6)",
							Type:  "dashed",
							Width: 1.5,
						},
					},
				}
			},
		)

	var buf bytes.Buffer
	if err := line.Render(&buf); err != nil {
		return "", err
	}

	return template.HTML(buf.String()), nil //nolint:gosec // Output of the chart renderer, not user input.
}
