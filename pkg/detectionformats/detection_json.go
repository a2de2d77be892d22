package detectionformats

import (
	"encoding/json"
	"fmt"
)

type detectionWire struct {
	Type            string        `json:"Type"`
	ID              string        `json:"ID,omitempty"`
	Source          Source        `json:"Source"`
	Hypocenter      Hypocenter    `json:"Hypocenter"`
	DetectionType   string        `json:"DetectionType,omitempty"`
	DetectionTime   string        `json:"DetectionTime,omitempty"`
	EventType       *EventType    `json:"EventType,omitempty"`
	Bayes           *wireFloat    `json:"Bayes,omitempty"`
	MinimumDistance *wireFloat    `json:"MinimumDistance,omitempty"`
	RMS             *wireFloat    `json:"RMS,omitempty"`
	Gap             *wireFloat    `json:"Gap,omitempty"`
	Detector        string        `json:"Detector,omitempty"`
	Data            []Observation `json:"Data,omitempty"`
}

// MarshalJSON encodes the detection. Source and Hypocenter are always
// written; every other optional member is left out while absent.
//
// Data is written in its stored order, not grouped as picks then
// correlations, so a decoded detection re-encodes unchanged.
func (d Detection) MarshalJSON() ([]byte, error) {
	w := detectionWire{
		Type:            d.Type(),
		ID:              d.ID,
		Source:          d.Source,
		Hypocenter:      d.Hypocenter,
		DetectionType:   d.DetectionType,
		DetectionTime:   outTime(d.DetectionTime),
		Bayes:           outFloat(d.Bayes),
		MinimumDistance: outFloat(d.MinimumDistance),
		RMS:             outFloat(d.RMS),
		Gap:             outFloat(d.Gap),
		Detector:        d.Detector,
	}
	if !d.EventType.IsEmpty() {
		w.EventType = &d.EventType
	}
	for _, o := range d.Data {
		if o = observationValue(o); o != nil {
			w.Data = append(w.Data, o)
		}
	}
	return json.Marshal(w)
}

func (d *Detection) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}

	var out Detection
	if tag := o.str(keyType); tag != TypeDetection {
		out.badTag = &tag
	}
	out.ID = o.str(keyID)
	if c, ok := o.child("Source"); ok {
		out.Source.decode(c)
	}
	if c, ok := o.child("Hypocenter"); ok {
		if err := out.Hypocenter.decode(c); err != nil {
			return fmt.Errorf("Hypocenter: %w", err)
		}
	}
	out.DetectionType = o.str("DetectionType")
	if out.DetectionTime, err = o.time("DetectionTime"); err != nil {
		return err
	}
	if c, ok := o.child("EventType"); ok {
		out.EventType.decode(c)
	}
	out.Bayes = o.float("Bayes")
	out.MinimumDistance = o.float("MinimumDistance")
	out.RMS = o.float("RMS")
	out.Gap = o.float("Gap")
	out.Detector = o.str("Detector")
	if items, ok := o.array("Data"); ok {
		if out.Data, err = decodeObservations(items); err != nil {
			return err
		}
	}

	*d = out
	return nil
}
