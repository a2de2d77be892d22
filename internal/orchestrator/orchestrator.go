package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/hcole-usgs/earthquake-detection-formats/internal/broker"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/config"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/engine"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/eventbus"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/health"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/logging"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/registry"
	"github.com/hcole-usgs/earthquake-detection-formats/internal/relay"
	"google.golang.org/grpc"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

const serviceName = "detection-relay"

// Orchestrator manages the relay lifecycle.
//
// Lifecycle:
//  1. Start() - builds the engine, connects the registry and the transport,
//     prepares the health and gRPC servers
//  2. Run() - consumes inbound payloads until the context is cancelled
//  3. Stop() - drains in-flight work and closes every connection
//
// The registry is optional: without Redis, messages are still checked and
// relayed but not recorded, and duplicates go unnoticed. The transport is
// required.
type Orchestrator struct {
	config *config.Config
	log    *logging.Logger

	engine    *engine.Engine
	processor *relay.Processor
	registry  *registry.Client

	// NATS transport
	natsPublisher  *eventbus.Publisher
	natsSubscriber *eventbus.Subscriber
	pool           *relay.Pool

	// Kafka transport
	kafkaProducer *broker.Producer
	kafkaConsumer *broker.Consumer
	kafkaDone     chan struct{}

	health       *health.HealthServer
	grpcServer   *grpc.Server
	grpcListener net.Listener
}

// NewOrchestrator creates an orchestrator. Nothing is connected until Start.
func NewOrchestrator(cfg *config.Config, log *logging.Logger) *Orchestrator {
	return &Orchestrator{
		config: cfg,
		log:    log,
	}
}

// Start connects to every dependency. It returns an error only when a
// required component cannot be initialised.
func (o *Orchestrator) Start(ctx context.Context) error {
	o.log.Info("starting relay", "transport", o.config.Transport)

	o.engine = NewEngine(o.log)

	o.connectRegistry(ctx) // Optional - warnings logged on failure

	publisher, err := o.connectTransport()
	if err != nil {
		return fmt.Errorf("failed to connect %s transport: %w", o.config.Transport, err)
	}

	var reg relay.Registry
	if o.registry != nil {
		reg = o.registry
	}
	o.processor = relay.NewProcessor(o.engine, publisher, reg, relay.Subjects{
		Accepted: o.config.AcceptedSubject,
		Rejected: o.config.RejectedSubject,
	}, o.log.With("component", "processor"))

	o.health = health.NewHealthServer(serviceName, o.healthChecks()...)
	if o.registry != nil {
		o.health.SetStats(func(ctx context.Context) (interface{}, error) {
			return o.registry.Stats(ctx)
		})
	}

	if err := o.initializeGRPCServer(); err != nil {
		return fmt.Errorf("failed to initialize gRPC server: %w", err)
	}

	o.log.Info("relay started", "types", o.engine.GetRegisteredTypes())
	return nil
}

// NewEngine returns an engine with every message type of the family
// registered.
func NewEngine(log *logging.Logger) *engine.Engine {
	eng := engine.NewEngine(log.With("component", "engine"))
	eng.RegisterHandler(engine.NewDetectionHandler())
	eng.RegisterHandler(engine.NewPickHandler())
	eng.RegisterHandler(engine.NewCorrelationHandler())
	return eng
}

func (o *Orchestrator) connectRegistry(ctx context.Context) {
	o.log.Info("connecting to registry", "addr", o.config.RedisAddr, "db", o.config.RedisDB)

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client, err := registry.NewClient(ctx, o.config.RedisAddr, o.config.RedisPassword, o.config.RedisDB, o.config.RegistryTTL)
	if err != nil {
		o.log.Warn("registry unavailable, messages will not be recorded", "error", err)
		return
	}

	o.registry = client
	o.log.Info("connected to registry")
}

func (o *Orchestrator) connectTransport() (relay.Publisher, error) {
	switch o.config.Transport {
	case config.TransportNATS:
		pub, err := eventbus.NewPublisher(o.config.NatsURL, o.log.With("component", "nats"))
		if err != nil {
			return nil, err
		}
		o.natsPublisher = pub

		sub, err := eventbus.NewSubscriber(o.config.NatsURL, serviceName, o.log.With("component", "nats"))
		if err != nil {
			pub.Close()
			return nil, err
		}
		o.natsSubscriber = sub
		return pub, nil

	case config.TransportKafka:
		o.kafkaProducer = broker.NewProducer(o.config.KafkaBrokers)
		o.kafkaConsumer = broker.NewConsumer(o.config.KafkaBrokers, o.config.KafkaGroupID,
			o.config.InboundSubject, o.log.With("component", "kafka"))
		return o.kafkaProducer, nil

	default:
		return nil, fmt.Errorf("unknown transport %q", o.config.Transport)
	}
}

func (o *Orchestrator) healthChecks() []health.Check {
	var checks []health.Check

	switch {
	case o.natsPublisher != nil:
		checks = append(checks, health.Check{Name: "nats", Required: true, Probe: func(context.Context) error {
			if !o.natsPublisher.IsConnected() || !o.natsSubscriber.IsConnected() {
				return errors.New("not connected")
			}
			return nil
		}})
	case o.kafkaProducer != nil:
		checks = append(checks, health.Check{Name: "kafka", Required: true, Probe: o.kafkaProducer.Ping})
	}

	if o.registry != nil {
		checks = append(checks, health.Check{Name: "redis", Probe: o.registry.Ping})
	} else {
		checks = append(checks, health.Check{Name: "redis", Probe: func(context.Context) error {
			return errors.New("not configured")
		}})
	}

	return checks
}

func (o *Orchestrator) initializeGRPCServer() error {
	listener, err := net.Listen("tcp", ":"+o.config.GRPCPort)
	if err != nil {
		return fmt.Errorf("failed to listen on port %s: %w", o.config.GRPCPort, err)
	}
	o.grpcListener = listener

	o.grpcServer = grpc.NewServer()
	healthpb.RegisterHealthServer(o.grpcServer, o.health.GRPC())

	// Enable gRPC reflection for debugging (grpcurl, etc.)
	reflection.Register(o.grpcServer)

	return nil
}

// Run serves health checks and relays inbound payloads until ctx is
// cancelled or a server fails.
func (o *Orchestrator) Run(ctx context.Context) error {
	errChan := make(chan error, 2)

	go func() {
		if err := o.grpcServer.Serve(o.grpcListener); err != nil {
			errChan <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		if err := o.health.Start(":" + o.config.HealthPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("health server error: %w", err)
		}
	}()

	go o.health.Watch(ctx, 10*time.Second)

	switch {
	case o.natsSubscriber != nil:
		// Workers get their own context so queued payloads still publish
		// while shutting down.
		o.pool = relay.NewPool(o.config.Workers, o.processor, o.log.With("component", "pool"))
		o.pool.Start(context.Background())
		if err := o.natsSubscriber.Start(ctx, o.config.InboundSubject, o.pool); err != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", o.config.InboundSubject, err)
		}

	case o.kafkaConsumer != nil:
		o.kafkaDone = make(chan struct{})
		go func() {
			defer close(o.kafkaDone)
			if err := o.kafkaConsumer.Run(ctx, o.processor); err != nil {
				errChan <- fmt.Errorf("kafka consumer error: %w", err)
			}
		}()
	}

	o.log.Info("relay ready",
		"inbound", o.config.InboundSubject,
		"accepted", o.config.AcceptedSubject,
		"rejected", o.config.RejectedSubject,
		"grpc_port", o.config.GRPCPort,
		"health_port", o.config.HealthPort)

	select {
	case <-ctx.Done():
		o.log.Info("shutdown signal received")
		return nil
	case err := <-errChan:
		return err
	}
}

// Stop drains in-flight work and releases every resource.
func (o *Orchestrator) Stop() error {
	o.log.Info("stopping relay")

	if o.grpcServer != nil {
		o.grpcServer.GracefulStop()
	}

	if o.health != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := o.health.Shutdown(ctx); err != nil {
			o.log.Warn("health server shutdown failed", "error", err)
		}
		cancel()
	}

	// Inbound first, so nothing new arrives while draining.
	if o.natsSubscriber != nil {
		o.natsSubscriber.Close()
	}
	if o.pool != nil {
		o.pool.Close()
	}
	if o.kafkaConsumer != nil {
		if err := o.kafkaConsumer.Close(); err != nil {
			o.log.Warn("kafka consumer close failed", "error", err)
		}
		if o.kafkaDone != nil {
			<-o.kafkaDone
		}
	}

	if o.natsPublisher != nil {
		o.natsPublisher.Close()
	}
	if o.kafkaProducer != nil {
		if err := o.kafkaProducer.Close(); err != nil {
			o.log.Warn("kafka producer close failed", "error", err)
		}
	}

	if o.registry != nil {
		if err := o.registry.Close(); err != nil {
			o.log.Warn("registry close failed", "error", err)
		}
	}

	o.log.Info("relay stopped")
	return nil
}
