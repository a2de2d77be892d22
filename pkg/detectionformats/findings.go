package detectionformats

import "strings"

// Finding is one validation defect. Field names the offending member.
// Causes holds the findings of a nested value that failed its own
// validation; they are kept structured and only flattened by String.
type Finding struct {
	Field   string
	Message string
	Causes  Findings
}

// String renders the finding the way it appears in an error report: the
// message followed by each cause, space separated.
func (f Finding) String() string {
	if len(f.Causes) == 0 {
		return f.Message
	}
	var b strings.Builder
	b.WriteString(f.Message)
	for _, c := range f.Causes {
		b.WriteByte(' ')
		b.WriteString(c.String())
	}
	return b.String()
}

// Findings is an ordered validation report. An empty report means valid.
type Findings []Finding

// Strings flattens the report into human-readable error strings.
func (fs Findings) Strings() []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.String())
	}
	return out
}

// Fields returns the field of every finding, in report order.
func (fs Findings) Fields() []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, f.Field)
	}
	return out
}

func (fs *Findings) add(field, message string) {
	*fs = append(*fs, Finding{Field: field, Message: message})
}

// nest records a nested value's findings under one composite entry. A nested
// value with no findings is valid and adds nothing.
func (fs *Findings) nest(field, message string, causes Findings) {
	if len(causes) == 0 {
		return
	}
	*fs = append(*fs, Finding{Field: field, Message: message, Causes: causes})
}

// oneOf reports whether v is one of the allowed values.
func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
