package detectionformats

import (
	"errors"
	"fmt"
)

// ErrUnknownType is returned by ParseMessage for a type tag outside the
// message family.
var ErrUnknownType = errors.New("unknown message type")

// MessageType returns the top-level type tag of a message, or "" when the
// data is not an object or carries no string tag.
func MessageType(data []byte) string {
	o, err := decodeObject(data)
	if err != nil {
		return ""
	}
	return o.str(keyType)
}

// ParseMessage decodes any message of the family, routed on its type tag.
func ParseMessage(data []byte) (Message, error) {
	o, err := decodeObject(data)
	if err != nil {
		return nil, err
	}
	tag := o.str(keyType)
	if tag == TypeDetection {
		d, err := ParseDetection(data)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	dec, ok := observationDecoders[tag]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, tag)
	}
	return dec(o)
}
