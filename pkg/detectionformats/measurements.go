package detectionformats

import "encoding/json"

// Filter describes one filter applied to the data before picking.
type Filter struct {
	Type     string
	HighPass *float64
	LowPass  *float64
	Units    string
}

type filterWire struct {
	Type     string     `json:"Type,omitempty"`
	HighPass *wireFloat `json:"HighPass,omitempty"`
	LowPass  *wireFloat `json:"LowPass,omitempty"`
	Units    string     `json:"Units,omitempty"`
}

func (f Filter) IsEmpty() bool {
	return f.Type == "" && f.HighPass == nil && f.LowPass == nil && f.Units == ""
}

func (f Filter) MarshalJSON() ([]byte, error) {
	return json.Marshal(filterWire{
		Type:     f.Type,
		HighPass: outFloat(f.HighPass),
		LowPass:  outFloat(f.LowPass),
		Units:    f.Units,
	})
}

func (f *Filter) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	f.decode(o)
	return nil
}

func (f *Filter) decode(o object) {
	*f = Filter{
		Type:     o.str("Type"),
		HighPass: o.float("HighPass"),
		LowPass:  o.float("LowPass"),
		Units:    o.str("Units"),
	}
}

func (f Filter) Clone() Filter {
	f.HighPass = clonePtr(f.HighPass)
	f.LowPass = clonePtr(f.LowPass)
	return f
}

func (f Filter) Validate() Findings {
	var fs Findings
	if present(f.HighPass) && *f.HighPass < 0 {
		fs.add("HighPass", "Invalid HighPass in filter class.")
	}
	if present(f.LowPass) && *f.LowPass < 0 {
		fs.add("LowPass", "Invalid LowPass in filter class.")
	}
	return fs
}

func (f Filter) Errors() []string { return f.Validate().Strings() }

func (f Filter) IsValid() bool { return len(f.Errors()) == 0 }

// Amplitude is the measured amplitude of a pick.
type Amplitude struct {
	Amplitude *float64
	Period    *float64
	SNR       *float64
}

type amplitudeWire struct {
	Amplitude *wireFloat `json:"Amplitude,omitempty"`
	Period    *wireFloat `json:"Period,omitempty"`
	SNR       *wireFloat `json:"SNR,omitempty"`
}

func (a Amplitude) IsEmpty() bool {
	return a.Amplitude == nil && a.Period == nil && a.SNR == nil
}

func (a Amplitude) MarshalJSON() ([]byte, error) {
	return json.Marshal(amplitudeWire{
		Amplitude: outFloat(a.Amplitude),
		Period:    outFloat(a.Period),
		SNR:       outFloat(a.SNR),
	})
}

func (a *Amplitude) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	a.decode(o)
	return nil
}

func (a *Amplitude) decode(o object) {
	*a = Amplitude{
		Amplitude: o.float("Amplitude"),
		Period:    o.float("Period"),
		SNR:       o.float("SNR"),
	}
}

func (a Amplitude) Clone() Amplitude {
	return Amplitude{
		Amplitude: clonePtr(a.Amplitude),
		Period:    clonePtr(a.Period),
		SNR:       clonePtr(a.SNR),
	}
}

func (a Amplitude) Validate() Findings {
	var fs Findings
	if present(a.Period) && *a.Period < 0 {
		fs.add("Period", "Invalid Period in amplitude class.")
	}
	if present(a.SNR) && *a.SNR < 0 {
		fs.add("SNR", "Invalid SNR in amplitude class.")
	}
	return fs
}

func (a Amplitude) Errors() []string { return a.Validate().Strings() }

func (a Amplitude) IsValid() bool { return len(a.Errors()) == 0 }

// Beam is an array beam measurement attached to a pick. BackAzimuth and
// Slowness are required once any beam value is given.
type Beam struct {
	BackAzimuth      *float64
	BackAzimuthError *float64
	Slowness         *float64
	SlownessError    *float64
	PowerRatio       *float64
	PowerRatioError  *float64
}

type beamWire struct {
	BackAzimuth      *wireFloat `json:"BackAzimuth,omitempty"`
	BackAzimuthError *wireFloat `json:"BackAzimuthError,omitempty"`
	Slowness         *wireFloat `json:"Slowness,omitempty"`
	SlownessError    *wireFloat `json:"SlownessError,omitempty"`
	PowerRatio       *wireFloat `json:"PowerRatio,omitempty"`
	PowerRatioError  *wireFloat `json:"PowerRatioError,omitempty"`
}

func (b Beam) IsEmpty() bool {
	return b.BackAzimuth == nil && b.BackAzimuthError == nil && b.Slowness == nil &&
		b.SlownessError == nil && b.PowerRatio == nil && b.PowerRatioError == nil
}

func (b Beam) MarshalJSON() ([]byte, error) {
	return json.Marshal(beamWire{
		BackAzimuth:      outFloat(b.BackAzimuth),
		BackAzimuthError: outFloat(b.BackAzimuthError),
		Slowness:         outFloat(b.Slowness),
		SlownessError:    outFloat(b.SlownessError),
		PowerRatio:       outFloat(b.PowerRatio),
		PowerRatioError:  outFloat(b.PowerRatioError),
	})
}

func (b *Beam) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	b.decode(o)
	return nil
}

func (b *Beam) decode(o object) {
	*b = Beam{
		BackAzimuth:      o.float("BackAzimuth"),
		BackAzimuthError: o.float("BackAzimuthError"),
		Slowness:         o.float("Slowness"),
		SlownessError:    o.float("SlownessError"),
		PowerRatio:       o.float("PowerRatio"),
		PowerRatioError:  o.float("PowerRatioError"),
	}
}

func (b Beam) Clone() Beam {
	return Beam{
		BackAzimuth:      clonePtr(b.BackAzimuth),
		BackAzimuthError: clonePtr(b.BackAzimuthError),
		Slowness:         clonePtr(b.Slowness),
		SlownessError:    clonePtr(b.SlownessError),
		PowerRatio:       clonePtr(b.PowerRatio),
		PowerRatioError:  clonePtr(b.PowerRatioError),
	}
}

func (b Beam) Validate() Findings {
	var fs Findings

	switch {
	case !present(b.BackAzimuth):
		fs.add("BackAzimuth", "BackAzimuth in beam class is missing.")
	case *b.BackAzimuth < 0 || *b.BackAzimuth > 360:
		fs.add("BackAzimuth", "Invalid BackAzimuth in beam class.")
	}
	if present(b.BackAzimuthError) && *b.BackAzimuthError < 0 {
		fs.add("BackAzimuthError", "Invalid BackAzimuthError in beam class.")
	}

	switch {
	case !present(b.Slowness):
		fs.add("Slowness", "Slowness in beam class is missing.")
	case *b.Slowness < 0:
		fs.add("Slowness", "Invalid Slowness in beam class.")
	}
	if present(b.SlownessError) && *b.SlownessError < 0 {
		fs.add("SlownessError", "Invalid SlownessError in beam class.")
	}

	if present(b.PowerRatio) && *b.PowerRatio < 0 {
		fs.add("PowerRatio", "Invalid PowerRatio in beam class.")
	}
	if present(b.PowerRatioError) && *b.PowerRatioError < 0 {
		fs.add("PowerRatioError", "Invalid PowerRatioError in beam class.")
	}

	return fs
}

func (b Beam) Errors() []string { return b.Validate().Strings() }

func (b Beam) IsValid() bool { return len(b.Errors()) == 0 }

// AssociationInfo describes how an observation fits a hypocenter.
// Distance is in degrees, Azimuth in degrees clockwise from north.
type AssociationInfo struct {
	Phase    string
	Distance *float64
	Azimuth  *float64
	Residual *float64
	Sigma    *float64
}

type associationInfoWire struct {
	Phase    string     `json:"Phase,omitempty"`
	Distance *wireFloat `json:"Distance,omitempty"`
	Azimuth  *wireFloat `json:"Azimuth,omitempty"`
	Residual *wireFloat `json:"Residual,omitempty"`
	Sigma    *wireFloat `json:"Sigma,omitempty"`
}

func (a AssociationInfo) IsEmpty() bool {
	return a.Phase == "" && a.Distance == nil && a.Azimuth == nil && a.Residual == nil && a.Sigma == nil
}

func (a AssociationInfo) MarshalJSON() ([]byte, error) {
	return json.Marshal(associationInfoWire{
		Phase:    a.Phase,
		Distance: outFloat(a.Distance),
		Azimuth:  outFloat(a.Azimuth),
		Residual: outFloat(a.Residual),
		Sigma:    outFloat(a.Sigma),
	})
}

func (a *AssociationInfo) UnmarshalJSON(data []byte) error {
	o, err := decodeObject(data)
	if err != nil {
		return err
	}
	a.decode(o)
	return nil
}

func (a *AssociationInfo) decode(o object) {
	*a = AssociationInfo{
		Phase:    o.str("Phase"),
		Distance: o.float("Distance"),
		Azimuth:  o.float("Azimuth"),
		Residual: o.float("Residual"),
		Sigma:    o.float("Sigma"),
	}
}

func (a AssociationInfo) Clone() AssociationInfo {
	return AssociationInfo{
		Phase:    a.Phase,
		Distance: clonePtr(a.Distance),
		Azimuth:  clonePtr(a.Azimuth),
		Residual: clonePtr(a.Residual),
		Sigma:    clonePtr(a.Sigma),
	}
}

func (a AssociationInfo) Validate() Findings {
	var fs Findings
	if present(a.Distance) && (*a.Distance < 0 || *a.Distance > 180) {
		fs.add("Distance", "Invalid Distance in associationinfo class.")
	}
	if present(a.Azimuth) && (*a.Azimuth < 0 || *a.Azimuth > 360) {
		fs.add("Azimuth", "Invalid Azimuth in associationinfo class.")
	}
	if present(a.Sigma) && *a.Sigma < 0 {
		fs.add("Sigma", "Invalid Sigma in associationinfo class.")
	}
	return fs
}

func (a AssociationInfo) Errors() []string { return a.Validate().Strings() }

func (a AssociationInfo) IsValid() bool { return len(a.Errors()) == 0 }
