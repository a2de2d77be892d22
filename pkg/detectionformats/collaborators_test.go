package detectionformats_test

import (
	"encoding/json"
	"testing"
	"time"

	df "github.com/hcole-usgs/earthquake-detection-formats/pkg/detectionformats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSource_Validate(t *testing.T) {
	assert.True(t, testSource().IsValid())
	assert.Equal(t, []string{"Empty AgencyID in source class."}, df.NewSource("", "a").Errors())
	assert.Equal(t, []string{"Empty Author in source class."}, df.NewSource("US", "").Errors())
}

func TestSite_Validate(t *testing.T) {
	assert.True(t, df.NewSite("BOZ", "", "US", "").IsValid())
	assert.Equal(t,
		[]string{"Empty Station in site class.", "Empty Network in site class."},
		df.Site{Channel: "BHZ"}.Errors())
}

func TestHypocenter_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*df.Hypocenter)
		want   []string
	}{
		{"valid", func(*df.Hypocenter) {}, nil},
		{"missing latitude", func(h *df.Hypocenter) { h.Latitude = nil }, []string{"Latitude in hypocenter class is missing."}},
		{"latitude range", func(h *df.Hypocenter) { h.Latitude = df.Ptr(90.5) }, []string{"Latitude in hypocenter class not in the range of -90 to 90."}},
		{"longitude range", func(h *df.Hypocenter) { h.Longitude = df.Ptr(-180.1) }, []string{"Longitude in hypocenter class not in the range of -180 to 180."}},
		{"missing time", func(h *df.Hypocenter) { h.Time = time.Time{} }, []string{"Time in hypocenter class is missing."}},
		{"depth range", func(h *df.Hypocenter) { h.Depth = df.Ptr(1500.5) }, []string{"Depth in hypocenter class not in the range of -100 to 1500."}},
		{"negative depth error", func(h *df.Hypocenter) { h.DepthError = df.Ptr(-1.0) }, []string{"DepthError in hypocenter class is negative."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := testHypocenter()
			tt.mutate(&h)

			if tt.want == nil {
				assert.Empty(t, h.Errors())
				return
			}
			assert.Equal(t, tt.want, h.Errors())
		})
	}
}

func TestEventType_EmptyAndValidate(t *testing.T) {
	assert.True(t, df.EventType{}.IsEmpty())
	assert.False(t, df.NewEventType("", df.CertaintyConfirmed).IsEmpty())
	assert.True(t, df.NewEventType(df.EventTypeQuarryBlast, df.CertaintyConfirmed).IsValid())
	assert.Equal(t,
		[]string{"Invalid Type in eventtype class.", "Invalid Certainty in eventtype class."},
		df.NewEventType("Landslide", "Likely").Errors())
}

func TestBeam_RequiredOnceGiven(t *testing.T) {
	b := df.Beam{PowerRatio: df.Ptr(1.0)}

	assert.Equal(t, []string{"BackAzimuth in beam class is missing.", "Slowness in beam class is missing."}, b.Errors())

	b.BackAzimuth = df.Ptr(361.0)
	b.Slowness = df.Ptr(0.5)
	assert.Equal(t, []string{"Invalid BackAzimuth in beam class."}, b.Errors())
}

func TestPick_ValidateAndRoundTrip(t *testing.T) {
	p := testPick("p1")
	p.Beam = df.Beam{BackAzimuth: df.Ptr(22.5), Slowness: df.Ptr(1.44)}
	require.True(t, p.IsValid(), "errors: %v", p.Errors())

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Type":"Pick"`)

	decoded, err := df.ParsePick(data)
	require.NoError(t, err)
	assert.Equal(t, p, decoded)
}

func TestPick_ValidateDefects(t *testing.T) {
	p := testPick("")
	p.Polarity = "sideways"
	p.Onset = "sudden"
	p.Picker = "robot"
	p.Filter = append(p.Filter, df.Filter{HighPass: df.Ptr(-1.0)})
	p.Amplitude.SNR = df.Ptr(-3.0)

	assert.Equal(t, []string{
		"Empty ID in pick class.",
		"Invalid Polarity in pick class.",
		"Invalid Onset in pick class.",
		"Invalid Picker in pick class.",
		"Filter object did not validate in pick class: Invalid HighPass in filter class.",
		"Amplitude object did not validate in pick class: Invalid SNR in amplitude class.",
	}, p.Errors())
	assert.Equal(t, []string{"ID", "Polarity", "Onset", "Picker", "Filter[1]", "Amplitude"}, p.Validate().Fields())
}

func TestPick_WrongTagFailsValidation(t *testing.T) {
	p, err := df.ParsePick([]byte(`{"Type":"Correlation","ID":"x","Site":{"Station":"BOZ","Network":"US"},"Source":{"AgencyID":"US","Author":"a"},"Time":"2015-12-28T21:32:30.250Z"}`))
	require.NoError(t, err)

	assert.Equal(t, []string{"Non-pick type in pick class."}, p.Errors())
}

func TestObservation_LiteralsReportTheirType(t *testing.T) {
	p := df.Pick{ID: "p1"}
	c := df.Correlation{ID: "c1"}

	assert.Equal(t, df.TypePick, p.Type())
	assert.NotContains(t, p.Errors(), "Non-pick type in pick class.")
	assert.Equal(t, df.TypeCorrelation, c.Type())
	assert.NotContains(t, c.Errors(), "Non-correlation type in correlation class.")

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Type":"Pick"`)
}

func TestPick_FilterSkipsNonObjects(t *testing.T) {
	p, err := df.ParsePick([]byte(`{"Type":"Pick","Filter":[{"Type":"BandPass","HighPass":1.0},3,"x",{"LowPass":2.5}]}`))
	require.NoError(t, err)

	require.Len(t, p.Filter, 2)
	assert.Equal(t, "BandPass", p.Filter[0].Type)
	assert.Equal(t, 2.5, *p.Filter[1].LowPass)
}

func TestCorrelation_ValidateAndRoundTrip(t *testing.T) {
	c := testCorrelation("c1")
	c.AssociationInfo = df.AssociationInfo{Phase: "P", Distance: df.Ptr(12.0)}
	require.True(t, c.IsValid(), "errors: %v", c.Errors())

	data, err := json.Marshal(c)
	require.NoError(t, err)

	decoded, err := df.ParseCorrelation(data)
	require.NoError(t, err)
	assert.Equal(t, c, decoded)
}

func TestCorrelation_ValidateDefects(t *testing.T) {
	c := testCorrelation("c1")
	c.Correlation = nil
	c.Hypocenter.Latitude = nil
	c.EventType = df.NewEventType("", "Maybe")
	c.AssociationInfo = df.AssociationInfo{Azimuth: df.Ptr(400.0)}

	assert.Equal(t, []string{
		"Correlation in correlation class is missing.",
		"Hypocenter object did not validate in correlation class: Latitude in hypocenter class is missing.",
		"EventType object did not validate in correlation class: Invalid Certainty in eventtype class.",
		"AssociationInfo object did not validate in correlation class: Invalid Azimuth in associationinfo class.",
	}, c.Errors())
}

func TestCorrelation_CloneIsIndependent(t *testing.T) {
	c := testCorrelation("c1")
	cp := c.Clone()

	*cp.Correlation = 0
	*cp.Hypocenter.Depth = 0

	assert.Equal(t, 2.65, *c.Correlation)
	assert.Equal(t, 32.44, *c.Hypocenter.Depth)
}
