package detectionformats

import (
	"encoding/json"
	"fmt"
)

// Observation is one element of a detection's Data array: a Pick or a
// Correlation. The set is closed; use a type switch to tell them apart.
//
// *Pick and *Correlation also satisfy the interface. Detection methods treat
// them as the value they point to, and skip nil.
type Observation interface {
	Message
	isObservation()
	cloneObservation() Observation
}

// observationValue returns o as a Pick or Correlation value, or nil.
func observationValue(o Observation) Observation {
	switch v := o.(type) {
	case *Pick:
		if v == nil {
			return nil
		}
		return *v
	case *Correlation:
		if v == nil {
			return nil
		}
		return *v
	}
	return o
}

type decoder func(object) (Observation, error)

// observationDecoders maps a Data element's type tag to its decoder.
var observationDecoders = map[string]decoder{
	TypePick: func(o object) (Observation, error) {
		var p Pick
		if err := p.decode(o); err != nil {
			return nil, err
		}
		return p, nil
	},
	TypeCorrelation: func(o object) (Observation, error) {
		var c Correlation
		if err := c.decode(o); err != nil {
			return nil, err
		}
		return c, nil
	},
}

// decodeObservation decodes one Data element. Elements that are not objects,
// or whose type tag is missing or unknown, yield (nil, nil) and are skipped.
func decodeObservation(raw json.RawMessage) (Observation, error) {
	o, err := decodeObject(raw)
	if err != nil {
		return nil, nil
	}
	dec, ok := observationDecoders[o.str(keyType)]
	if !ok {
		return nil, nil
	}
	return dec(o)
}

func decodeObservations(items []json.RawMessage) ([]Observation, error) {
	var out []Observation
	for i, raw := range items {
		obs, err := decodeObservation(raw)
		if err != nil {
			return nil, fmt.Errorf("Data[%d]: %w", i, err)
		}
		if obs != nil {
			out = append(out, obs)
		}
	}
	return out, nil
}
