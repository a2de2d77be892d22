package engine

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/hcole-usgs/earthquake-detection-formats/internal/logging"
	df "github.com/hcole-usgs/earthquake-detection-formats/pkg/detectionformats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validDetection = `{"Type":"Detection","ID":"det-1",
	"Source":{"AgencyID":"US","Author":"relay-test"},
	"Hypocenter":{"Latitude":40.3344,"Longitude":-121.44,"Time":"2015-12-28T21:32:24.017Z","Depth":32.0},
	"Gap":33.67}`

func newTestEngine() *Engine {
	eng := NewEngine(logging.Nop())
	eng.RegisterHandler(NewDetectionHandler())
	eng.RegisterHandler(NewPickHandler())
	eng.RegisterHandler(NewCorrelationHandler())
	return eng
}

func TestEngine_RegisterHandler(t *testing.T) {
	eng := newTestEngine()

	assert.Equal(t, []string{df.TypeCorrelation, df.TypeDetection, df.TypePick}, eng.GetRegisteredTypes())
}

func TestEngine_Check_Accepted(t *testing.T) {
	res := newTestEngine().Check([]byte(validDetection))

	require.True(t, res.Accepted(), "errors: %v", res.Errors)
	assert.Equal(t, df.TypeDetection, res.Type)
	assert.Equal(t, "det-1", res.ID)
	assert.Empty(t, res.Errors)
	assert.IsType(t, df.Detection{}, res.Message)
}

func TestEngine_Check_Stages(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		stage   string
		errMsg  string
	}{
		{"not json", `nope`, StageDecodeType, "unsupported message type"},
		{"unknown type", `{"Type":"Amplitude"}`, StageDecodeType, `"Amplitude"`},
		{"bad time", `{"Type":"Pick","ID":"p","Time":"yesterday"}`, StageDecode, "invalid time string"},
		{"invalid", `{"Type":"Detection","ID":"d","Gap":400.0}`, StageValidate, "Invalid Gap in detection class."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := newTestEngine().Check([]byte(tt.payload))

			assert.False(t, res.Accepted())
			assert.Equal(t, tt.stage, res.Stage)
			assert.Nil(t, res.Canonical)
			require.NotEmpty(t, res.Errors)
			assert.Contains(t, strings.Join(res.Errors, "\n"), tt.errMsg)
		})
	}
}

func TestEngine_Check_CanonicalForm(t *testing.T) {
	payload := `{"Depth": 1, "Type":"Detection","ID":"det-1","Extra":"dropped",
		"Source":{"AgencyID":"US","Author":"relay-test"},
		"Hypocenter":{"Latitude":40.0,"Longitude":-121.0,"Time":"2015-12-28T21:32:24.017Z","Depth":32.0},
		"Gap":360.0}`

	res := newTestEngine().Check([]byte(payload))
	require.True(t, res.Accepted(), "errors: %v", res.Errors)

	var members map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(res.Canonical, &members))
	assert.NotContains(t, members, "Extra")
	assert.NotContains(t, members, "Depth")
	assert.JSONEq(t, `360.0`, string(members["Gap"]))

	again := newTestEngine().Check(res.Canonical)
	assert.Equal(t, res.Canonical, again.Canonical)
}

func TestEngine_Check_UnregisteredType(t *testing.T) {
	eng := NewEngine(logging.Nop())
	eng.RegisterHandler(NewPickHandler())

	res := eng.Check([]byte(validDetection))

	assert.Equal(t, StageDecodeType, res.Stage)
	assert.Equal(t, df.TypeDetection, res.Type)
}
