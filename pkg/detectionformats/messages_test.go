package detectionformats_test

import (
	"encoding/json"
	"fmt"
	"testing"

	df "github.com/hcole-usgs/earthquake-detection-formats/pkg/detectionformats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessageType(t *testing.T) {
	assert.Equal(t, df.TypePick, df.MessageType([]byte(`{"Type":"Pick"}`)))
	assert.Empty(t, df.MessageType([]byte(`{"Type":1}`)))
	assert.Empty(t, df.MessageType([]byte(`[]`)))
	assert.Empty(t, df.MessageType([]byte(`garbage`)))
}

func TestParseMessage_Routes(t *testing.T) {
	for _, m := range []df.Message{testDetection(), testPick("p"), testCorrelation("c")} {
		data, err := json.Marshal(m)
		require.NoError(t, err)

		got, err := df.ParseMessage(data)
		require.NoError(t, err)

		assert.Equal(t, m.Type(), got.Type())
		assert.Equal(t, m, got)
		assert.True(t, got.IsValid())
	}
}

func TestParseMessage_UnknownType(t *testing.T) {
	_, err := df.ParseMessage([]byte(`{"Type":"Amplitude"}`))

	assert.ErrorIs(t, err, df.ErrUnknownType)
	assert.Contains(t, err.Error(), "Amplitude")
}

func TestParseMessage_PropagatesTimeFault(t *testing.T) {
	_, err := df.ParseMessage([]byte(`{"Type":"Pick","Time":"bad"}`))

	assert.ErrorIs(t, err, df.ErrInvalidTime)
}

func ExampleParseDetection() {
	payload := `{"Type":"Detection","ID":"12GFH48776857",
		"Source":{"AgencyID":"US","Author":"TestAuthor"},
		"Hypocenter":{"Latitude":40.3344,"Longitude":-121.44,"Time":"2015-12-28T21:32:24.017Z","Depth":32.44},
		"Gap":400.0,
		"Data":[{"Type":"Pick","ID":"p1"}]}`

	det, err := df.ParseDetection([]byte(payload))
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, msg := range det.Errors() {
		fmt.Println(msg)
	}
	// Output:
	// Invalid Gap in detection class.
	// Invalid pick in detection class: Site object did not validate in pick class: Empty Station in site class. Empty Network in site class. Source object did not validate in pick class: Empty AgencyID in source class. Empty Author in source class. Time in pick class is missing.
}

func ExampleNewDetection() {
	det := df.NewDetection("abc",
		df.NewSource("US", "TestAuthor"),
		df.NewHypocenter(40.3344, -121.44, originTime, 32.0),
		df.WithGap(360),
	)

	data, _ := json.Marshal(det)
	fmt.Println(string(data))
	// Output:
	// {"Type":"Detection","ID":"abc","Source":{"AgencyID":"US","Author":"TestAuthor"},"Hypocenter":{"Latitude":40.3344,"Longitude":-121.44,"Time":"2015-12-28T21:32:24.017Z","Depth":32.0},"Gap":360.0}
}
