package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/engine"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/logging"
)

// Publisher sends a payload to a subject (NATS) or topic (Kafka).
type Publisher interface {
	Publish(ctx context.Context, subject string, data []byte) error
}

// Registry records accepted messages. Registry failures never stop a
// message from being relayed.
type Registry interface {
	Seen(ctx context.Context, msgType, id string) (bool, error)
	Record(ctx context.Context, msgType, id string, canonical []byte) error
	CountRejected(ctx context.Context) error
}

// Rejection is published for every payload that does not pass the engine.
type Rejection struct {
	ReportID   string          `json:"report_id"`
	Type       string          `json:"type,omitempty"`
	ID         string          `json:"id,omitempty"`
	Stage      string          `json:"stage"`
	Errors     []string        `json:"errors"`
	Raw        json.RawMessage `json:"raw,omitempty"`
	RawText    string          `json:"raw_text,omitempty"`
	RejectedAt time.Time       `json:"rejected_at"`
}

// Subjects names where accepted and rejected payloads go.
type Subjects struct {
	Accepted string
	Rejected string
}

type Processor struct {
	engine    *engine.Engine
	publisher Publisher
	registry  Registry
	subjects  Subjects
	log       *logging.Logger
	now       func() time.Time
}

// NewProcessor creates a processor. registry may be nil, in which case
// nothing is recorded and duplicates are not detected.
func NewProcessor(eng *engine.Engine, publisher Publisher, registry Registry, subjects Subjects, log *logging.Logger) *Processor {
	return &Processor{
		engine:    eng,
		publisher: publisher,
		registry:  registry,
		subjects:  subjects,
		log:       log,
		now:       time.Now,
	}
}

// Process checks one inbound payload and publishes either its canonical form
// or a rejection report. The returned error is a publish failure; invalid
// payloads are not errors.
func (p *Processor) Process(ctx context.Context, data []byte) error {
	res := p.engine.Check(data)
	if !res.Accepted() {
		return p.reject(ctx, res, data)
	}

	if p.registry != nil {
		seen, err := p.registry.Seen(ctx, res.Type, res.ID)
		if err != nil {
			p.log.Warn("registry lookup failed", "type", res.Type, "id", res.ID, "error", err)
		} else if seen {
			p.log.Info("duplicate message", "type", res.Type, "id", res.ID)
		}
	}

	if err := p.publisher.Publish(ctx, p.subjects.Accepted, res.Canonical); err != nil {
		return fmt.Errorf("failed to publish accepted %s %s: %w", res.Type, res.ID, err)
	}

	if p.registry != nil {
		if err := p.registry.Record(ctx, res.Type, res.ID, res.Canonical); err != nil {
			p.log.Warn("failed to record message", "type", res.Type, "id", res.ID, "error", err)
		}
	}

	p.log.Debug("accepted message", "type", res.Type, "id", res.ID, "bytes", len(res.Canonical))
	return nil
}

func (p *Processor) reject(ctx context.Context, res engine.Result, data []byte) error {
	rej := Rejection{
		ReportID:   uuid.NewString(),
		Type:       res.Type,
		ID:         res.ID,
		Stage:      res.Stage,
		Errors:     res.Errors,
		RejectedAt: p.now().UTC(),
	}
	if json.Valid(data) {
		rej.Raw = json.RawMessage(data)
	} else {
		rej.RawText = string(data)
	}

	out, err := json.Marshal(rej)
	if err != nil {
		return fmt.Errorf("failed to marshal rejection: %w", err)
	}

	if err := p.publisher.Publish(ctx, p.subjects.Rejected, out); err != nil {
		return fmt.Errorf("failed to publish rejection %s: %w", rej.ReportID, err)
	}

	if p.registry != nil {
		if err := p.registry.CountRejected(ctx); err != nil {
			p.log.Warn("failed to count rejection", "error", err)
		}
	}

	p.log.Info("rejected message",
		"report_id", rej.ReportID, "type", res.Type, "id", res.ID, "stage", res.Stage, "errors", len(res.Errors))
	return nil
}
