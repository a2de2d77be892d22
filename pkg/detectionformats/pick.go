package detectionformats

import (
	"encoding/json"
	"fmt"
	"time"
)

// Pick is a phase arrival observed at one site. ID, Site, Source and Time
// are required; a zero Time means missing. Amplitude, Beam and
// AssociationInfo are absent while empty.
type Pick struct {
	// badTag holds the tag of a decoded pick whose Type was not TypePick.
	badTag *string

	ID              string
	Site            Site
	Source          Source
	Time            time.Time
	Phase           string
	Polarity        string
	Onset           string
	Picker          string
	Filter          []Filter
	Amplitude       Amplitude
	Beam            Beam
	AssociationInfo AssociationInfo
}

type pickWire struct {
	Type            string           `json:"Type"`
	ID              string           `json:"ID,omitempty"`
	Site            Site             `json:"Site"`
	Source          Source           `json:"Source"`
	Time            string           `json:"Time,omitempty"`
	Phase           string           `json:"Phase,omitempty"`
	Polarity        string           `json:"Polarity,omitempty"`
	Onset           string           `json:"Onset,omitempty"`
	Picker          string           `json:"Picker,omitempty"`
	Filter          []Filter         `json:"Filter,omitempty"`
	Amplitude       *Amplitude       `json:"Amplitude,omitempty"`
	Beam            *Beam            `json:"Beam,omitempty"`
	AssociationInfo *AssociationInfo `json:"AssociationInfo,omitempty"`
}

// NewPick builds a pick from its required values.
func NewPick(id string, site Site, source Source, t time.Time) Pick {
	return Pick{
		ID:     id,
		Site:   site,
		Source: source,
		Time:   t.UTC(),
	}
}

// ParsePick decodes a pick message.
func ParsePick(data []byte) (Pick, error) {
	var p Pick
	err := p.UnmarshalJSON(data)
	return p, err
}

// Type returns TypePick, or the tag a decoded pick carried.
func (p Pick) Type() string {
	if p.badTag != nil {
		return *p.badTag
	}
	return TypePick
}

func (p Pick) MarshalJSON() ([]byte, error) {
	w := pickWire{
		Type:     p.Type(),
		ID:       p.ID,
		Site:     p.Site,
		Source:   p.Source,
		Time:     outRequiredTime(p.Time),
		Phase:    p.Phase,
		Polarity: p.Polarity,
		Onset:    p.Onset,
		Picker:   p.Picker,
		Filter:   p.Filter,
	}
	if !p.Amplitude.IsEmpty() {
		w.Amplitude = &p.Amplitude
	}
	if !p.Beam.IsEmpty() {
		w.Beam = &p.Beam
	}
	if !p.AssociationInfo.IsEmpty() {
		w.AssociationInfo = &p.AssociationInfo
	}
	return json.Marshal(w)
}

func (p *Pick) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	return p.decode(o)
}

func (p *Pick) decode(o object) error {
	var out Pick
	if tag := o.str(keyType); tag != TypePick {
		out.badTag = &tag
	}
	out.ID = o.str(keyID)
	if c, ok := o.child("Site"); ok {
		out.Site.decode(c)
	}
	if c, ok := o.child("Source"); ok {
		out.Source.decode(c)
	}
	t, err := o.time("Time")
	if err != nil {
		return err
	}
	if t != nil {
		out.Time = *t
	}
	out.Phase = o.str("Phase")
	out.Polarity = o.str("Polarity")
	out.Onset = o.str("Onset")
	out.Picker = o.str("Picker")
	if items, ok := o.array("Filter"); ok {
		for _, item := range items {
			c, err := decodeObject(item)
			if err != nil {
				continue
			}
			var f Filter
			f.decode(c)
			out.Filter = append(out.Filter, f)
		}
	}
	if c, ok := o.child("Amplitude"); ok {
		out.Amplitude.decode(c)
	}
	if c, ok := o.child("Beam"); ok {
		out.Beam.decode(c)
	}
	if c, ok := o.child("AssociationInfo"); ok {
		out.AssociationInfo.decode(c)
	}
	*p = out
	return nil
}

// Clone returns a deep copy of the pick.
func (p Pick) Clone() Pick {
	c := p
	c.badTag = clonePtr(p.badTag)
	if p.Filter != nil {
		c.Filter = make([]Filter, len(p.Filter))
		for i, f := range p.Filter {
			c.Filter[i] = f.Clone()
		}
	}
	c.Amplitude = p.Amplitude.Clone()
	c.Beam = p.Beam.Clone()
	c.AssociationInfo = p.AssociationInfo.Clone()
	return c
}

func (p Pick) Validate() Findings {
	var fs Findings

	if p.Type() != TypePick {
		fs.add(keyType, "Non-pick type in pick class.")
	}
	if p.ID == "" {
		fs.add(keyID, "Empty ID in pick class.")
	}
	fs.nest("Site", "Site object did not validate in pick class:", p.Site.Validate())
	fs.nest("Source", "Source object did not validate in pick class:", p.Source.Validate())

	if p.Time.IsZero() {
		fs.add("Time", "Time in pick class is missing.")
	} else if s, err := checkedFormatTime(p.Time); err != nil {
		fs.add("Time", err.Error())
	} else if !IsTimeString(s) {
		fs.add("Time", "Pick Time did not validate in pick class.")
	}

	if p.Polarity != "" && !oneOf(p.Polarity, Polarities) {
		fs.add("Polarity", "Invalid Polarity in pick class.")
	}
	if p.Onset != "" && !oneOf(p.Onset, Onsets) {
		fs.add("Onset", "Invalid Onset in pick class.")
	}
	if p.Picker != "" && !oneOf(p.Picker, Pickers) {
		fs.add("Picker", "Invalid Picker in pick class.")
	}

	for i, f := range p.Filter {
		fs.nest(fmt.Sprintf("Filter[%d]", i), "Filter object did not validate in pick class:", f.Validate())
	}
	if !p.Amplitude.IsEmpty() {
		fs.nest("Amplitude", "Amplitude object did not validate in pick class:", p.Amplitude.Validate())
	}
	if !p.Beam.IsEmpty() {
		fs.nest("Beam", "Beam object did not validate in pick class:", p.Beam.Validate())
	}
	if !p.AssociationInfo.IsEmpty() {
		fs.nest("AssociationInfo", "AssociationInfo object did not validate in pick class:", p.AssociationInfo.Validate())
	}

	return fs
}

func (p Pick) Errors() []string { return p.Validate().Strings() }

func (p Pick) IsValid() bool { return len(p.Errors()) == 0 }

func (Pick) isObservation() {}

func (p Pick) cloneObservation() Observation { return p.Clone() }
