// Package chart builds declarative line-chart descriptions from filtered
// price series and trade markers. Rendering is a collaborator concern; this
// package only describes what to draw.
package chart

import (
	"github.com/etfgraph/etfgraph/pricing"
)

// XY is one chart point: canonical date on x, price on y.
type XY struct {
	X string  `json:"x"`
	Y float64 `json:"y"`
}

// Dataset is one drawable series.
type Dataset struct {
	Type            string  `json:"type,omitempty"`
	Label           string  `json:"label"`
	Data            []XY    `json:"data"`
	BorderColor     string  `json:"borderColor"`
	BackgroundColor string  `json:"backgroundColor"`
	Tension         float64 `json:"tension,omitempty"`
	PointRadius     int     `json:"pointRadius,omitempty"`
}

// Config is a complete chart description in the renderer's declarative
// shape.
type Config struct {
	Type string `json:"type"`
	Data struct {
		Datasets []Dataset `json:"datasets"`
	} `json:"data"`
	Options Options `json:"options"`
}

type Options struct {
	Parsing    bool       `json:"parsing"`
	Responsive bool       `json:"responsive"`
	Scales     Scales     `json:"scales"`
}

type Scales struct {
	X XAxis `json:"x"`
	Y YAxis `json:"y"`
}

type XAxis struct {
	Type  string    `json:"type"`
	Time  TimeUnit  `json:"time"`
	Title AxisTitle `json:"title"`
}

type YAxis struct {
	BeginAtZero bool      `json:"beginAtZero"`
	Title       AxisTitle `json:"title"`
}

type TimeUnit struct {
	Unit string `json:"unit"`
}

type AxisTitle struct {
	Display bool   `json:"display"`
	Text    string `json:"text"`
}

// Build assembles the chart description for one symbol: the price line,
// plus a scatter overlay for the trade markers that joined against the
// price history.
func Build(label, color string, points pricing.Series, markers []MarkerPoint) Config {
	data := make([]XY, 0, len(points))
	for _, p := range points {
		data = append(data, XY{X: p.Day(), Y: p.Price})
	}

	cfg := Config{Type: "line"}
	cfg.Data.Datasets = []Dataset{{
		Label:           label,
		Data:            data,
		BorderColor:     color,
		BackgroundColor: color + "33",
		Tension:         0.3,
	}}

	if len(markers) > 0 {
		overlay := make([]XY, 0, len(markers))
		for _, m := range markers {
			overlay = append(overlay, XY{X: m.Day, Y: m.Price})
		}
		cfg.Data.Datasets = append(cfg.Data.Datasets, Dataset{
			Type:            "scatter",
			Label:           label + " trades",
			Data:            overlay,
			BorderColor:     "black",
			BackgroundColor: "black",
			PointRadius:     6,
		})
	}

	cfg.Options = Options{
		Parsing:    false,
		Responsive: true,
		Scales: Scales{
			X: XAxis{
				Type:  "time",
				Time:  TimeUnit{Unit: "day"},
				Title: AxisTitle{Display: true, Text: "Date"},
			},
			Y: YAxis{
				BeginAtZero: false,
				Title:       AxisTitle{Display: true, Text: "Price (USD)"},
			},
		},
	}
	return cfg
}
