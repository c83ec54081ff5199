package metrics

// Counter and Observer mirror the narrow slice of the prometheus API the
// pipeline needs, so components can be wired with a noop set in tests.
type Counter interface {
	Inc()
}

type Observer interface {
	Observe(float64)
}

type Metrics struct {
	RequestsTotal   Counter
	RequestFailures Counter
	RequestSeconds  Observer
	ReportsWritten  Counter
	RenderSeconds   Observer
}

type noopCounter struct{}

func (noopCounter) Inc() {}

type noopObserver struct{}

func (noopObserver) Observe(float64) {}

func NewNoop() *Metrics {
	c := noopCounter{}
	o := noopObserver{}
	return &Metrics{
		RequestsTotal:   c,
		RequestFailures: c,
		RequestSeconds:  o,
		ReportsWritten:  c,
		RenderSeconds:   o,
	}
}
