package detectionformats

import "time"

// Detection is one event hypothesis: who made it, where and when it is
// located, how it is classified, summary statistics, and the picks and
// correlations that support it.
//
// Optional floats are nil when absent. A pointer to NaN is also treated as
// absent, since NaN has no wire form.
type Detection struct {
	// badTag holds the tag of a decoded detection whose Type was not
	// TypeDetection. Values built in code, struct literals included, always
	// report TypeDetection.
	badTag *string

	ID              string
	Source          Source
	Hypocenter      Hypocenter
	DetectionType   string
	DetectionTime   *time.Time
	EventType       EventType
	Bayes           *float64
	MinimumDistance *float64
	RMS             *float64
	Gap             *float64
	Detector        string

	// Data holds picks and correlations in wire order.
	Data []Observation
}

// Option sets an optional field of a Detection.
type Option func(*Detection)

func WithDetectionType(detectionType string) Option {
	return func(d *Detection) { d.DetectionType = detectionType }
}

func WithDetectionTime(t time.Time) Option {
	return func(d *Detection) {
		t = t.UTC()
		d.DetectionTime = &t
	}
}

func WithEventType(eventType EventType) Option {
	return func(d *Detection) { d.EventType = eventType }
}

func WithBayes(v float64) Option {
	return func(d *Detection) { d.Bayes = &v }
}

func WithMinimumDistance(v float64) Option {
	return func(d *Detection) { d.MinimumDistance = &v }
}

func WithRMS(v float64) Option {
	return func(d *Detection) { d.RMS = &v }
}

func WithGap(v float64) Option {
	return func(d *Detection) { d.Gap = &v }
}

func WithDetector(detector string) Option {
	return func(d *Detection) { d.Detector = detector }
}

// WithPicks appends picks to Data.
func WithPicks(picks ...Pick) Option {
	return func(d *Detection) {
		for _, p := range picks {
			d.Data = append(d.Data, p.Clone())
		}
	}
}

// WithCorrelations appends correlations to Data.
func WithCorrelations(correlations ...Correlation) Option {
	return func(d *Detection) {
		for _, c := range correlations {
			d.Data = append(d.Data, c.Clone())
		}
	}
}

// WithObservations appends picks and correlations to Data in the given order.
// Nil entries are dropped.
func WithObservations(observations ...Observation) Option {
	return func(d *Detection) {
		for _, o := range observations {
			if o = observationValue(o); o != nil {
				d.Data = append(d.Data, o.cloneObservation())
			}
		}
	}
}

// NewDetection builds a detection from its required values and any options.
func NewDetection(id string, source Source, hypocenter Hypocenter, opts ...Option) Detection {
	d := Detection{
		ID:         id,
		Source:     source,
		Hypocenter: hypocenter.Clone(),
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

// ParseDetection decodes a detection message. Fields with the wrong JSON kind
// are left absent; the only decode faults are malformed JSON, a non-object
// message, and a time string that does not parse.
func ParseDetection(data []byte) (Detection, error) {
	var d Detection
	err := d.UnmarshalJSON(data)
	return d, err
}

// Type returns TypeDetection, or the tag a decoded detection carried.
func (d Detection) Type() string {
	if d.badTag != nil {
		return *d.badTag
	}
	return TypeDetection
}

// Picks returns the picks in Data, in order.
func (d Detection) Picks() []Pick {
	var out []Pick
	for _, o := range d.Data {
		if p, ok := observationValue(o).(Pick); ok {
			out = append(out, p)
		}
	}
	return out
}

// Correlations returns the correlations in Data, in order.
func (d Detection) Correlations() []Correlation {
	var out []Correlation
	for _, o := range d.Data {
		if c, ok := observationValue(o).(Correlation); ok {
			out = append(out, c)
		}
	}
	return out
}

func (d *Detection) AddPick(p Pick) {
	d.Data = append(d.Data, p.Clone())
}

func (d *Detection) AddCorrelation(c Correlation) {
	d.Data = append(d.Data, c.Clone())
}

// Clone returns a deep copy of the detection. The copy shares nothing with
// the original. Pointer elements of Data are copied as values and nil
// elements are dropped.
func (d Detection) Clone() Detection {
	out := d
	out.badTag = clonePtr(d.badTag)
	out.Hypocenter = d.Hypocenter.Clone()
	out.DetectionTime = clonePtr(d.DetectionTime)
	out.Bayes = clonePtr(d.Bayes)
	out.MinimumDistance = clonePtr(d.MinimumDistance)
	out.RMS = clonePtr(d.RMS)
	out.Gap = clonePtr(d.Gap)
	if d.Data != nil {
		out.Data = make([]Observation, 0, len(d.Data))
		for _, o := range d.Data {
			if o = observationValue(o); o != nil {
				out.Data = append(out.Data, o.cloneObservation())
			}
		}
	}
	return out
}
