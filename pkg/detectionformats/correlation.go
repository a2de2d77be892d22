package detectionformats

import (
	"encoding/json"
	"fmt"
	"time"
)

// Correlation is a waveform correlation match at one site against a known
// event. ID, Site, Source, Phase, Time, Correlation and Hypocenter are
// required.
type Correlation struct {
	// badTag holds the tag of a decoded correlation whose Type was not
	// TypeCorrelation.
	badTag *string

	ID                 string
	Site               Site
	Source             Source
	Phase              string
	Time               time.Time
	Correlation        *float64
	Hypocenter         Hypocenter
	EventType          EventType
	Magnitude          *float64
	SNR                *float64
	ZScore             *float64
	DetectionThreshold *float64
	ThresholdType      string
	AssociationInfo    AssociationInfo
}

type correlationWire struct {
	Type               string           `json:"Type"`
	ID                 string           `json:"ID,omitempty"`
	Site               Site             `json:"Site"`
	Source             Source           `json:"Source"`
	Phase              string           `json:"Phase,omitempty"`
	Time               string           `json:"Time,omitempty"`
	Correlation        *wireFloat       `json:"Correlation,omitempty"`
	Hypocenter         Hypocenter       `json:"Hypocenter"`
	EventType          *EventType       `json:"EventType,omitempty"`
	Magnitude          *wireFloat       `json:"Magnitude,omitempty"`
	SNR                *wireFloat       `json:"SNR,omitempty"`
	ZScore             *wireFloat       `json:"ZScore,omitempty"`
	DetectionThreshold *wireFloat       `json:"DetectionThreshold,omitempty"`
	ThresholdType      string           `json:"ThresholdType,omitempty"`
	AssociationInfo    *AssociationInfo `json:"AssociationInfo,omitempty"`
}

// NewCorrelation builds a correlation from its required values.
func NewCorrelation(id string, site Site, source Source, phase string, t time.Time, correlation float64, hypocenter Hypocenter) Correlation {
	return Correlation{
		ID:          id,
		Site:        site,
		Source:      source,
		Phase:       phase,
		Time:        t.UTC(),
		Correlation: &correlation,
		Hypocenter:  hypocenter,
	}
}

// ParseCorrelation decodes a correlation message.
func ParseCorrelation(data []byte) (Correlation, error) {
	var c Correlation
	err := c.UnmarshalJSON(data)
	return c, err
}

// Type returns TypeCorrelation, or the tag a decoded correlation carried.
func (c Correlation) Type() string {
	if c.badTag != nil {
		return *c.badTag
	}
	return TypeCorrelation
}

func (c Correlation) MarshalJSON() ([]byte, error) {
	w := correlationWire{
		Type:               c.Type(),
		ID:                 c.ID,
		Site:               c.Site,
		Source:             c.Source,
		Phase:              c.Phase,
		Time:               outRequiredTime(c.Time),
		Correlation:        outFloat(c.Correlation),
		Hypocenter:         c.Hypocenter,
		Magnitude:          outFloat(c.Magnitude),
		SNR:                outFloat(c.SNR),
		ZScore:             outFloat(c.ZScore),
		DetectionThreshold: outFloat(c.DetectionThreshold),
		ThresholdType:      c.ThresholdType,
	}
	if !c.EventType.IsEmpty() {
		w.EventType = &c.EventType
	}
	if !c.AssociationInfo.IsEmpty() {
		w.AssociationInfo = &c.AssociationInfo
	}
	return json.Marshal(w)
}

func (c *Correlation) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	return c.decode(o)
}

func (c *Correlation) decode(o object) error {
	var out Correlation
	if tag := o.str(keyType); tag != TypeCorrelation {
		out.badTag = &tag
	}
	out.ID = o.str(keyID)
	if child, ok := o.child("Site"); ok {
		out.Site.decode(child)
	}
	if child, ok := o.child("Source"); ok {
		out.Source.decode(child)
	}
	out.Phase = o.str("Phase")
	t, err := o.time("Time")
	if err != nil {
		return err
	}
	if t != nil {
		out.Time = *t
	}
	out.Correlation = o.float("Correlation")
	if child, ok := o.child("Hypocenter"); ok {
		if err := out.Hypocenter.decode(child); err != nil {
			return fmt.Errorf("Hypocenter: %w", err)
		}
	}
	if child, ok := o.child("EventType"); ok {
		out.EventType.decode(child)
	}
	out.Magnitude = o.float("Magnitude")
	out.SNR = o.float("SNR")
	out.ZScore = o.float("ZScore")
	out.DetectionThreshold = o.float("DetectionThreshold")
	out.ThresholdType = o.str("ThresholdType")
	if child, ok := o.child("AssociationInfo"); ok {
		out.AssociationInfo.decode(child)
	}
	*c = out
	return nil
}

// Clone returns a deep copy of the correlation.
func (c Correlation) Clone() Correlation {
	out := c
	out.badTag = clonePtr(c.badTag)
	out.Correlation = clonePtr(c.Correlation)
	out.Hypocenter = c.Hypocenter.Clone()
	out.Magnitude = clonePtr(c.Magnitude)
	out.SNR = clonePtr(c.SNR)
	out.ZScore = clonePtr(c.ZScore)
	out.DetectionThreshold = clonePtr(c.DetectionThreshold)
	out.AssociationInfo = c.AssociationInfo.Clone()
	return out
}

func (c Correlation) Validate() Findings {
	var fs Findings

	if c.Type() != TypeCorrelation {
		fs.add(keyType, "Non-correlation type in correlation class.")
	}
	if c.ID == "" {
		fs.add(keyID, "Empty ID in correlation class.")
	}
	fs.nest("Site", "Site object did not validate in correlation class:", c.Site.Validate())
	fs.nest("Source", "Source object did not validate in correlation class:", c.Source.Validate())
	if c.Phase == "" {
		fs.add("Phase", "Empty Phase in correlation class.")
	}

	if c.Time.IsZero() {
		fs.add("Time", "Time in correlation class is missing.")
	} else if s, err := checkedFormatTime(c.Time); err != nil {
		fs.add("Time", err.Error())
	} else if !IsTimeString(s) {
		fs.add("Time", "Correlation Time did not validate in correlation class.")
	}

	if !present(c.Correlation) {
		fs.add("Correlation", "Correlation in correlation class is missing.")
	}
	fs.nest("Hypocenter", "Hypocenter object did not validate in correlation class:", c.Hypocenter.Validate())
	if !c.EventType.IsEmpty() {
		fs.nest("EventType", "EventType object did not validate in correlation class:", c.EventType.Validate())
	}
	if !c.AssociationInfo.IsEmpty() {
		fs.nest("AssociationInfo", "AssociationInfo object did not validate in correlation class:", c.AssociationInfo.Validate())
	}

	return fs
}

func (c Correlation) Errors() []string { return c.Validate().Strings() }

func (c Correlation) IsValid() bool { return len(c.Errors()) == 0 }

func (Correlation) isObservation() {}

func (c Correlation) cloneObservation() Observation { return c.Clone() }
