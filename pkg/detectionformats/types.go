package detectionformats

// Type tags carried in the "Type" key of every message.
const (
	TypeDetection   = "Detection"
	TypePick        = "Pick"
	TypeCorrelation = "Correlation"
)

// Detection types.
const (
	DetectionTypeNew     = "New"
	DetectionTypeUpdate  = "Update"
	DetectionTypeFinal   = "Final"
	DetectionTypeRetract = "Retract"
)

// DetectionTypes lists every valid DetectionType value.
var DetectionTypes = []string{
	DetectionTypeNew,
	DetectionTypeUpdate,
	DetectionTypeFinal,
	DetectionTypeRetract,
}

// Event types.
const (
	EventTypeEarthquake         = "Earthquake"
	EventTypeMineCollapse       = "Mine Collapse"
	EventTypeNuclearExplosion   = "Nuclear Explosion"
	EventTypeQuarryBlast        = "Quarry Blast"
	EventTypeInducedOrTriggered = "Induced or Triggered"
	EventTypeRockBurst          = "Rock Burst"
	EventTypeFluidInjection     = "Fluid Injection"
	EventTypeIceQuake           = "Ice Quake"
	EventTypeVolcanicEruption   = "Volcanic Eruption"
)

// EventTypes lists every valid EventType.Type value.
var EventTypes = []string{
	EventTypeEarthquake,
	EventTypeMineCollapse,
	EventTypeNuclearExplosion,
	EventTypeQuarryBlast,
	EventTypeInducedOrTriggered,
	EventTypeRockBurst,
	EventTypeFluidInjection,
	EventTypeIceQuake,
	EventTypeVolcanicEruption,
}

// Event type certainties.
const (
	CertaintySuspected = "Suspected"
	CertaintyConfirmed = "Confirmed"
)

var Certainties = []string{CertaintySuspected, CertaintyConfirmed}

// Pick polarities.
const (
	PolarityUp   = "up"
	PolarityDown = "down"
)

var Polarities = []string{PolarityUp, PolarityDown}

// Pick onsets.
const (
	OnsetImpulsive    = "impulsive"
	OnsetEmergent     = "emergent"
	OnsetQuestionable = "questionable"
)

var Onsets = []string{OnsetImpulsive, OnsetEmergent, OnsetQuestionable}

// Pickers.
const (
	PickerManual       = "manual"
	PickerRaypicker    = "raypicker"
	PickerFilterpicker = "filterpicker"
	PickerEarthworm    = "earthworm"
	PickerOther        = "other"
)

var Pickers = []string{PickerManual, PickerRaypicker, PickerFilterpicker, PickerEarthworm, PickerOther}

// Message is the contract shared by the top-level message types.
type Message interface {
	// Type returns the message's type tag.
	Type() string
	// Validate returns the structured validation report.
	Validate() Findings
	// Errors returns the flattened validation report.
	Errors() []string
	// IsValid reports whether Errors is empty.
	IsValid() bool
	MarshalJSON() ([]byte, error)
}
