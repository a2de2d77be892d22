package detectionformats

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Keys shared by the message family.
const (
	keyType = "Type"
	keyID   = "ID"
)

// object is one decoded JSON object. Members stay raw until a field asks for
// them, so every field checks its own JSON kind and falls back to absent
// instead of failing the whole message.
type object map[string]json.RawMessage

func decodeObject(data []byte) (object, error) {
	if kindOf(data) != '{' {
		return nil, fmt.Errorf("detectionformats: expected a JSON object")
	}
	var o object
	if err := json.Unmarshal(data, &o); err != nil {
		return nil, err
	}
	return o, nil
}

func kindOf(raw []byte) byte {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return 0
	}
	return raw[0]
}

// str returns the member as a string, or "" when it is missing or not a
// JSON string.
func (o object) str(key string) string {
	raw, ok := o[key]
	if !ok || kindOf(raw) != '"' {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// float returns the member when it is a floating-point JSON number. Integer
// literals are rejected so that accidental integer encodings stay absent.
func (o object) float(key string) *float64 {
	raw, ok := o[key]
	if !ok {
		return nil
	}
	f, ok := floatLiteral(raw)
	if !ok {
		return nil
	}
	return &f
}

// floatLiteral follows the usual JSON DOM rule for "is a double": the literal
// has a fraction or exponent, or it is an integer too wide for 64 bits.
func floatLiteral(raw []byte) (float64, bool) {
	lit := string(bytes.TrimSpace(raw))
	if lit == "" || (lit[0] != '-' && (lit[0] < '0' || lit[0] > '9')) {
		return 0, false
	}
	f, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, false
	}
	if strings.ContainsAny(lit, ".eE") {
		return f, true
	}
	if _, err := strconv.ParseInt(lit, 10, 64); err == nil {
		return 0, false
	}
	if _, err := strconv.ParseUint(lit, 10, 64); err == nil {
		return 0, false
	}
	return f, true
}

// child returns the member as a nested object.
func (o object) child(key string) (object, bool) {
	raw, ok := o[key]
	if !ok || kindOf(raw) != '{' {
		return nil, false
	}
	c, err := decodeObject(raw)
	if err != nil {
		return nil, false
	}
	return c, true
}

// array returns the member's elements when it is a JSON array.
func (o object) array(key string) ([]json.RawMessage, bool) {
	raw, ok := o[key]
	if !ok || kindOf(raw) != '[' {
		return nil, false
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

// time parses a string member as a canonical time string. A missing or
// non-string member is absent (nil, nil); a string that does not parse is a
// decode fault.
func (o object) time(key string) (*time.Time, error) {
	raw, ok := o[key]
	if !ok || kindOf(raw) != '"' {
		return nil, nil
	}
	t, err := ParseTime(o.str(key))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", key, err)
	}
	return &t, nil
}

// wireFloat always encodes with a fractional part, so 360 goes out as 360.0
// and is read back as a float.
type wireFloat float64

func (f wireFloat) MarshalJSON() ([]byte, error) {
	v := float64(f)
	format := byte('f')
	if abs := math.Abs(v); abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	b := strconv.AppendFloat(nil, v, format, -1, 64)
	if !bytes.ContainsAny(b, ".e") {
		b = append(b, '.', '0')
	}
	return b, nil
}

// present reports whether an optional float holds a value. A pointer to NaN
// counts as absent: the wire has no way to carry NaN.
func present(p *float64) bool {
	return p != nil && !math.IsNaN(*p)
}

// outFloat prepares an optional float for encoding. Non-finite values have
// no JSON form and are left out like absent ones.
func outFloat(p *float64) *wireFloat {
	if !present(p) || math.IsInf(*p, 0) {
		return nil
	}
	w := wireFloat(*p)
	return &w
}

func outTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return FormatTime(*t)
}

func outRequiredTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return FormatTime(t)
}

// Ptr returns a pointer to v, for filling optional fields.
func Ptr[T any](v T) *T {
	return &v
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
