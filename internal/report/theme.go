package report

// Theme carries the page and chart styling. It is passed into every builder
// explicitly; nothing in this package holds process-wide styling state.
type Theme struct {
	Background string // page and chart paper color
	Surface    string // chart plot area color
	FontFamily string
	FontSize   int
	FontColor  string
	GridColor  string
	BidColor   string
	AskColor   string
}

// DarkTheme is the default dashboard look.
func DarkTheme() Theme {
	return Theme{
		Background: "#0f1116",
		Surface:    "#161a22",
		FontFamily: "Aptos, sans-serif",
		FontSize:   13,
		FontColor:  "#ffffff",
		GridColor:  "#2a2e39",
		BidColor:   "#26a69a",
		AskColor:   "#ef5350",
	}
}

func (t Theme) baseLayout(title string, height int) Layout {
	return Layout{
		Title:  &Title{Text: title},
		Height: height,
		Margin: &Margin{L: 40, R: 40, T: 50, B: 40},
		Paper:  t.Background,
		Plot:   t.Surface,
		Font:   &Font{Family: t.FontFamily, Size: t.FontSize, Color: t.FontColor},
		XAxis:  &Axis{GridColor: t.GridColor},
		YAxis:  &Axis{GridColor: t.GridColor},
	}
}
