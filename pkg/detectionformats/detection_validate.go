package detectionformats

import "fmt"

// Validate checks the detection and returns every defect found. Checks are
// independent and run in a fixed order; nested values contribute one
// composite finding each. Validate never panics.
func (d Detection) Validate() Findings {
	var fs Findings

	if d.Type() != TypeDetection {
		fs.add(keyType, "Non-detection type in detection class.")
	}
	if d.ID == "" {
		fs.add(keyID, "Empty ID in detection class.")
	}
	fs.nest("Source", "Source object did not validate in detection class:", d.Source.Validate())
	fs.nest("Hypocenter", "Hypocenter object did not validate in detection class:", d.Hypocenter.Validate())

	if d.DetectionType != "" && !oneOf(d.DetectionType, DetectionTypes) {
		fs.add("DetectionType", "Invalid DetectionType in detection class.")
	}

	if d.DetectionTime != nil {
		if s, err := checkedFormatTime(*d.DetectionTime); err != nil {
			fs.add("DetectionTime", err.Error())
		} else if !IsTimeString(s) {
			fs.add("DetectionTime", "Detection Time did not validate in detection class.")
		}
	}

	if !d.EventType.IsEmpty() {
		fs.nest("EventType", "EventType object did not validate in detection class:", d.EventType.Validate())
	}

	if present(d.Bayes) && *d.Bayes < 0 {
		fs.add("Bayes", "Invalid Bayes in detection class.")
	}
	if present(d.MinimumDistance) && *d.MinimumDistance < 0 {
		fs.add("MinimumDistance", "Invalid MinimumDistance in detection class.")
	}
	if present(d.RMS) && *d.RMS < -10000 {
		fs.add("RMS", "Invalid RMS in detection class.")
	}
	if present(d.Gap) && (*d.Gap < 0 || *d.Gap > 360) {
		fs.add("Gap", "Invalid Gap in detection class.")
	}

	for i, o := range d.Data {
		if p, ok := observationValue(o).(Pick); ok {
			fs.nest(fmt.Sprintf("Data[%d]", i), "Invalid pick in detection class:", p.Validate())
		}
	}
	for i, o := range d.Data {
		if c, ok := observationValue(o).(Correlation); ok {
			fs.nest(fmt.Sprintf("Data[%d]", i), "Invalid correlation in detection class:", c.Validate())
		}
	}

	return fs
}

// Errors returns the validation report as flat strings. An empty report
// means the detection is valid.
func (d Detection) Errors() []string { return d.Validate().Strings() }

func (d Detection) IsValid() bool { return len(d.Errors()) == 0 }
