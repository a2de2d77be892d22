package detectionformats

import "encoding/json"

// Site is the station a pick or correlation was made on. Station and
// Network are required.
type Site struct {
	Station  string
	Channel  string
	Network  string
	Location string
}

type siteWire struct {
	Station  string `json:"Station,omitempty"`
	Channel  string `json:"Channel,omitempty"`
	Network  string `json:"Network,omitempty"`
	Location string `json:"Location,omitempty"`
}

func NewSite(station, channel, network, location string) Site {
	return Site{Station: station, Channel: channel, Network: network, Location: location}
}

func (s Site) MarshalJSON() ([]byte, error) {
	return json.Marshal(siteWire(s))
}

func (s *Site) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	s.decode(o)
	return nil
}

func (s *Site) decode(o object) {
	*s = Site{
		Station:  o.str("Station"),
		Channel:  o.str("Channel"),
		Network:  o.str("Network"),
		Location: o.str("Location"),
	}
}

func (s Site) Validate() Findings {
	var fs Findings
	if s.Station == "" {
		fs.add("Station", "Empty Station in site class.")
	}
	if s.Network == "" {
		fs.add("Network", "Empty Network in site class.")
	}
	return fs
}

func (s Site) Errors() []string { return s.Validate().Strings() }

func (s Site) IsValid() bool { return len(s.Errors()) == 0 }
