package report

// The types below cover the slice of the Plotly figure schema the dashboard
// uses. They are marshaled to JSON and handed to plotly.js in the page.

type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
	Frames []Frame `json:"frames,omitempty"`
}

type Trace struct {
	Type string `json:"type"`
	Name string `json:"name,omitempty"`
	Mode string `json:"mode,omitempty"`
	// X holds timestamps (RFC 3339 strings) or prices depending on the chart.
	X     any       `json:"x,omitempty"`
	Y     []float64 `json:"y,omitempty"`
	Open  []float64 `json:"open,omitempty"`
	High  []float64 `json:"high,omitempty"`
	Low   []float64 `json:"low,omitempty"`
	Close []float64 `json:"close,omitempty"`

	Marker *Marker `json:"marker,omitempty"`
	Line   *Line   `json:"line,omitempty"`
}

type Marker struct {
	Color string `json:"color,omitempty"`
	Size  int    `json:"size,omitempty"`
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type Layout struct {
	Title       *Title       `json:"title,omitempty"`
	Height      int          `json:"height,omitempty"`
	Margin      *Margin      `json:"margin,omitempty"`
	XAxis       *Axis        `json:"xaxis,omitempty"`
	YAxis       *Axis        `json:"yaxis,omitempty"`
	Paper       string       `json:"paper_bgcolor,omitempty"`
	Plot        string       `json:"plot_bgcolor,omitempty"`
	Font        *Font        `json:"font,omitempty"`
	ShowLegend  *bool        `json:"showlegend,omitempty"`
	UpdateMenus []UpdateMenu `json:"updatemenus,omitempty"`
}

type Title struct {
	Text string `json:"text"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

type Axis struct {
	Title     *Title `json:"title,omitempty"`
	GridColor string `json:"gridcolor,omitempty"`
	// Candlestick charts get a range slider unless it is switched off.
	RangeSlider *RangeSlider `json:"rangeslider,omitempty"`
}

type RangeSlider struct {
	Visible bool `json:"visible"`
}

type Font struct {
	Family string `json:"family,omitempty"`
	Size   int    `json:"size,omitempty"`
	Color  string `json:"color,omitempty"`
}

type UpdateMenu struct {
	Type       string   `json:"type"`
	X          float64  `json:"x"`
	Y          float64  `json:"y"`
	ShowActive bool     `json:"showactive"`
	Buttons    []Button `json:"buttons"`
}

type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// Frame is one animation step; Name is the prefix length it renders.
type Frame struct {
	Name string  `json:"name"`
	Data []Trace `json:"data"`
}
