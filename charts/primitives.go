// Package charts turns aggregate tables into backend-neutral drawing
// primitives: rectangles, polylines, markers, wedges, and labels. Each
// transform is a pure function; a rendering capability consumes the Figure.
package charts

import (
	"errors"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Point is a position in chart coordinates.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned filled rectangle anchored at its lower-left corner.
type Rect struct {
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	W    float64 `json:"w"`
	H    float64 `json:"h"`
	Fill string  `json:"fill"`
}

// Polyline is a connected sequence of line segments.
type Polyline struct {
	Points []Point `json:"points"`
	Color  string  `json:"color"`
	Width  float64 `json:"width"`
}

// Marker is a discrete data-point mark drawn on top of other primitives.
type Marker struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Radius float64 `json:"radius"`
	Fill   string  `json:"fill"`
	Stroke string  `json:"stroke"`
}

// Wedge is a polar bar: an angular sector starting at Theta spanning Width
// radians, extending from the origin to Radius.
type Wedge struct {
	Theta  float64 `json:"theta"`
	Width  float64 `json:"width"`
	Radius float64 `json:"radius"`
	Fill   string  `json:"fill"`
}

// Label is a text annotation. Align is one of "center", "left", "right".
type Label struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Text  string  `json:"text"`
	Align string  `json:"align"`
	Size  float64 `json:"size"`
	Color string  `json:"color"`
}

// Tick is an axis tick position with its display text.
type Tick struct {
	Pos  float64 `json:"pos"`
	Text string  `json:"text"`
}

// LegendEntry names a colored series.
type LegendEntry struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Figure is the complete set of drawing instructions for one chart.
type Figure struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	XLabel   string `json:"x_label,omitempty"`
	YLabel   string `json:"y_label,omitempty"`

	Rects     []Rect        `json:"rects,omitempty"`
	Polylines []Polyline    `json:"polylines,omitempty"`
	Markers   []Marker      `json:"markers,omitempty"`
	Wedges    []Wedge       `json:"wedges,omitempty"`
	Labels    []Label       `json:"labels,omitempty"`
	Legend    []LegendEntry `json:"legend,omitempty"`

	XTicks []Tick `json:"x_ticks,omitempty"`
	YTicks []Tick `json:"y_ticks,omitempty"`

	XMin  float64 `json:"x_min"`
	XMax  float64 `json:"x_max"`
	YMin  float64 `json:"y_min"`
	YMax  float64 `json:"y_max"`
	Polar bool    `json:"polar,omitempty"`
}

// InsufficientDataError signals that a chart precondition was not met. It is
// a recoverable outcome, not a failure: callers emit a descriptive empty
// state instead of drawing primitives.
type InsufficientDataError struct {
	Reason string
}

func (e *InsufficientDataError) Error() string {
	return e.Reason
}

// IsInsufficientData reports whether err is an insufficient-data outcome.
func IsInsufficientData(err error) bool {
	var ide *InsufficientDataError
	return errors.As(err, &ide)
}

var printer = message.NewPrinter(language.English)

// formatValue renders a value with thousands grouping for bar and point labels.
func formatValue(v float64) string {
	return printer.Sprintf("%d", int64(math.Round(v)))
}
