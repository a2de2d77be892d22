package detectionformats

import "encoding/json"

// Source identifies who produced a message.
type Source struct {
	AgencyID string
	Author   string
}

type sourceWire struct {
	AgencyID string `json:"AgencyID,omitempty"`
	Author   string `json:"Author,omitempty"`
}

func NewSource(agencyID, author string) Source {
	return Source{AgencyID: agencyID, Author: author}
}

func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(sourceWire(s))
}

func (s *Source) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	s.decode(o)
	return nil
}

func (s *Source) decode(o object) {
	*s = Source{
		AgencyID: o.str("AgencyID"),
		Author:   o.str("Author"),
	}
}

func (s Source) Validate() Findings {
	var fs Findings
	if s.AgencyID == "" {
		fs.add("AgencyID", "Empty AgencyID in source class.")
	}
	if s.Author == "" {
		fs.add("Author", "Empty Author in source class.")
	}
	return fs
}

func (s Source) Errors() []string { return s.Validate().Strings() }

func (s Source) IsValid() bool { return len(s.Errors()) == 0 }
