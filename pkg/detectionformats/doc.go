// Package detectionformats implements the earthquake detection message
// family: Detection, Pick and Correlation messages and the value objects
// they are built from.
//
// Every message type encodes to and decodes from JSON with the family's
// capitalized keys, and validates itself into a list of human-readable
// findings:
//
//	det, err := detectionformats.ParseDetection(payload)
//	if err != nil {
//	    // only malformed JSON or an unparseable time string end up here
//	    return err
//	}
//	for _, msg := range det.Errors() {
//	    fmt.Println(msg)
//	}
//
// Decoding is lenient: a field with the wrong JSON kind is treated as absent
// rather than rejected. Validation never fails; it only reports.
//
// The package performs no I/O and keeps no mutable package state, so values
// may be encoded, decoded and validated from any number of goroutines.
package detectionformats
