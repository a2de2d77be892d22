package engine

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/hcole-usgs/earthquake-detection-formats/internal/logging"
	df "github.com/hcole-usgs/earthquake-detection-formats/pkg/detectionformats"
)

// Stages a payload can stop at.
const (
	StageDecodeType = "decode_type"
	StageDecode     = "decode"
	StageValidate   = "validate"
	StageEncode     = "encode"
	StageAccepted   = "accepted"
)

// Handler decodes one message type of the family.
type Handler interface {
	// Type returns the type tag the handler accepts.
	Type() string
	Parse(data []byte) (df.Message, error)
}

type parseHandler struct {
	tag   string
	parse func([]byte) (df.Message, error)
}

func (h parseHandler) Type() string { return h.tag }

func (h parseHandler) Parse(data []byte) (df.Message, error) { return h.parse(data) }

func NewDetectionHandler() Handler {
	return parseHandler{tag: df.TypeDetection, parse: func(data []byte) (df.Message, error) {
		return df.ParseDetection(data)
	}}
}

func NewPickHandler() Handler {
	return parseHandler{tag: df.TypePick, parse: func(data []byte) (df.Message, error) {
		return df.ParsePick(data)
	}}
}

func NewCorrelationHandler() Handler {
	return parseHandler{tag: df.TypeCorrelation, parse: func(data []byte) (df.Message, error) {
		return df.ParseCorrelation(data)
	}}
}

// Result is the outcome of checking one payload.
type Result struct {
	Type      string
	ID        string
	Message   df.Message
	Canonical []byte
	Errors    []string
	Stage     string
}

// Accepted reports whether the payload passed every stage.
func (r Result) Accepted() bool { return r.Stage == StageAccepted }

// Engine checks inbound payloads against the registered handlers.
type Engine struct {
	handlers map[string]Handler
	log      *logging.Logger
}

func NewEngine(log *logging.Logger) *Engine {
	return &Engine{
		handlers: make(map[string]Handler),
		log:      log,
	}
}

// RegisterHandler adds a handler, replacing any handler for the same type.
func (e *Engine) RegisterHandler(h Handler) {
	e.handlers[h.Type()] = h
	e.log.Debug("registered handler", "type", h.Type())
}

// GetRegisteredTypes returns the registered type tags, sorted.
func (e *Engine) GetRegisteredTypes() []string {
	types := make([]string, 0, len(e.handlers))
	for t := range e.handlers {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// Check decodes, validates and re-encodes a payload. It never returns an
// error: every failure is reported in the Result with the stage it hit.
func (e *Engine) Check(data []byte) Result {
	tag := df.MessageType(data)
	res := Result{Type: tag}

	h, ok := e.handlers[tag]
	if !ok {
		res.Stage = StageDecodeType
		res.Errors = []string{fmt.Sprintf("unsupported message type %q", tag)}
		return res
	}

	msg, err := h.Parse(data)
	if err != nil {
		res.Stage = StageDecode
		res.Errors = []string{err.Error()}
		return res
	}
	res.Message = msg
	res.ID = messageID(msg)

	if errs := msg.Errors(); len(errs) > 0 {
		res.Stage = StageValidate
		res.Errors = errs
		return res
	}

	canonical, err := json.Marshal(msg)
	if err != nil {
		res.Stage = StageEncode
		res.Errors = []string{err.Error()}
		return res
	}
	res.Canonical = canonical
	res.Stage = StageAccepted
	return res
}

func messageID(msg df.Message) string {
	switch m := msg.(type) {
	case df.Detection:
		return m.ID
	case df.Pick:
		return m.ID
	case df.Correlation:
		return m.ID
	default:
		return ""
	}
}
