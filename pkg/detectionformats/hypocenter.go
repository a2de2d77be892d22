package detectionformats

import (
	"encoding/json"
	"time"
)

// Hypocenter is a location and origin time estimate. Latitude, Longitude,
// Depth and Time are required; a zero Time means missing. Depth is in
// kilometers, the error fields in the same units as their values.
type Hypocenter struct {
	Latitude       *float64
	Longitude      *float64
	Time           time.Time
	Depth          *float64
	LatitudeError  *float64
	LongitudeError *float64
	TimeError      *float64
	DepthError     *float64
}

type hypocenterWire struct {
	Latitude       *wireFloat `json:"Latitude,omitempty"`
	Longitude      *wireFloat `json:"Longitude,omitempty"`
	Time           string     `json:"Time,omitempty"`
	Depth          *wireFloat `json:"Depth,omitempty"`
	LatitudeError  *wireFloat `json:"LatitudeError,omitempty"`
	LongitudeError *wireFloat `json:"LongitudeError,omitempty"`
	TimeError      *wireFloat `json:"TimeError,omitempty"`
	DepthError     *wireFloat `json:"DepthError,omitempty"`
}

// NewHypocenter builds a hypocenter from its required values.
func NewHypocenter(latitude, longitude float64, t time.Time, depth float64) Hypocenter {
	return Hypocenter{
		Latitude:  &latitude,
		Longitude: &longitude,
		Time:      t.UTC(),
		Depth:     &depth,
	}
}

func (h Hypocenter) MarshalJSON() ([]byte, error) {
	return json.Marshal(hypocenterWire{
		Latitude:       outFloat(h.Latitude),
		Longitude:      outFloat(h.Longitude),
		Time:           outRequiredTime(h.Time),
		Depth:          outFloat(h.Depth),
		LatitudeError:  outFloat(h.LatitudeError),
		LongitudeError: outFloat(h.LongitudeError),
		TimeError:      outFloat(h.TimeError),
		DepthError:     outFloat(h.DepthError),
	})
}

func (h *Hypocenter) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	return h.decode(o)
}

func (h *Hypocenter) decode(o object) error {
	t, err := o.time("Time")
	if err != nil {
		return err
	}
	*h = Hypocenter{
		Latitude:       o.float("Latitude"),
		Longitude:      o.float("Longitude"),
		Depth:          o.float("Depth"),
		LatitudeError:  o.float("LatitudeError"),
		LongitudeError: o.float("LongitudeError"),
		TimeError:      o.float("TimeError"),
		DepthError:     o.float("DepthError"),
	}
	if t != nil {
		h.Time = *t
	}
	return nil
}

func (h Hypocenter) Clone() Hypocenter {
	return Hypocenter{
		Latitude:       clonePtr(h.Latitude),
		Longitude:      clonePtr(h.Longitude),
		Time:           h.Time,
		Depth:          clonePtr(h.Depth),
		LatitudeError:  clonePtr(h.LatitudeError),
		LongitudeError: clonePtr(h.LongitudeError),
		TimeError:      clonePtr(h.TimeError),
		DepthError:     clonePtr(h.DepthError),
	}
}

func (h Hypocenter) Validate() Findings {
	var fs Findings

	switch {
	case !present(h.Latitude):
		fs.add("Latitude", "Latitude in hypocenter class is missing.")
	case *h.Latitude < -90 || *h.Latitude > 90:
		fs.add("Latitude", "Latitude in hypocenter class not in the range of -90 to 90.")
	}

	switch {
	case !present(h.Longitude):
		fs.add("Longitude", "Longitude in hypocenter class is missing.")
	case *h.Longitude < -180 || *h.Longitude > 180:
		fs.add("Longitude", "Longitude in hypocenter class not in the range of -180 to 180.")
	}

	if h.Time.IsZero() {
		fs.add("Time", "Time in hypocenter class is missing.")
	} else if s, err := checkedFormatTime(h.Time); err != nil {
		fs.add("Time", err.Error())
	} else if !IsTimeString(s) {
		fs.add("Time", "Time in hypocenter class did not validate.")
	}

	switch {
	case !present(h.Depth):
		fs.add("Depth", "Depth in hypocenter class is missing.")
	case *h.Depth < -100 || *h.Depth > 1500:
		fs.add("Depth", "Depth in hypocenter class not in the range of -100 to 1500.")
	}

	if present(h.LatitudeError) && *h.LatitudeError < 0 {
		fs.add("LatitudeError", "LatitudeError in hypocenter class is negative.")
	}
	if present(h.LongitudeError) && *h.LongitudeError < 0 {
		fs.add("LongitudeError", "LongitudeError in hypocenter class is negative.")
	}
	if present(h.TimeError) && *h.TimeError < 0 {
		fs.add("TimeError", "TimeError in hypocenter class is negative.")
	}
	if present(h.DepthError) && *h.DepthError < 0 {
		fs.add("DepthError", "DepthError in hypocenter class is negative.")
	}

	return fs
}

func (h Hypocenter) Errors() []string { return h.Validate().Strings() }

func (h Hypocenter) IsValid() bool { return len(h.Errors()) == 0 }
