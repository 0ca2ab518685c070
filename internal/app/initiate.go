package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/hanifkusuma/otpgate/internal/pkg/clock"
	"github.com/hanifkusuma/otpgate/internal/pkg/config"
	"github.com/hanifkusuma/otpgate/internal/pkg/goroutine"
	"github.com/hanifkusuma/otpgate/internal/pkg/instrument"
	"github.com/hanifkusuma/otpgate/internal/pkg/jwt"
	"github.com/hanifkusuma/otpgate/internal/pkg/mail"
	"github.com/hanifkusuma/otpgate/internal/pkg/messaging"
	"github.com/hanifkusuma/otpgate/internal/pkg/otp"
	"github.com/hanifkusuma/otpgate/internal/pkg/router"
	"github.com/hanifkusuma/otpgate/internal/pkg/uid"
	"github.com/hanifkusuma/otpgate/internal/pkg/validator"
	"github.com/nats-io/nats.go"
	"github.com/nsqio/go-nsq"
	"github.com/rs/cors"
)

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path)
	if err != nil {
		slog.Error("failed to init config", "error", err)
		os.Exit(1)
	}

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	if err != nil {
		slog.Error("failed to init instrumentation", "error", err)
		os.Exit(1)
	}
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()
	a.otp = otp.NewCodeGenerator()
	a.goroutine = goroutine.NewManager(a.config.GetInt("app.server.max_goroutine"))

	validator, err := validator.NewV10Validator()
	if err != nil {
		slog.Error("failed to init validation v10 validator", "error", err)
		os.Exit(1)
	}
	a.validator = validator

	snow, err := uid.NewSnowflake()
	if err != nil {
		slog.Error("failed to init uid number snowflake", "error", err)
		os.Exit(1)
	}
	a.uid = snow

	objID, err := uid.NewObjectIDGenerator()
	if err != nil {
		slog.Error("failed to init uid string object_id", "error", err)
		os.Exit(1)
	}
	a.oid = objID
}

func (a *App) initJWT() {
	defaultJWT, err := jwt.NewSymmetric(
		[]byte(a.config.GetString("jwt.secret")),
		a.config.GetString("jwt.issuer"),
		a.config.GetMinute("jwt.ttl_minutes"),
		jwt.WithClock(a.clock),
		jwt.WithTokenID(a.uuid),
	)
	if err != nil {
		slog.Error("failed to init jwt token", "error", err)
		os.Exit(1)
	}
	a.jwt = defaultJWT
}

// initDelivery prepares the clients behind the configured otp delivery
// driver. The default log driver needs neither mail nor a broker.
func (a *App) initDelivery() {
	switch a.config.GetString("modules.auth.otp_delivery.driver") {
	case "mail":
		client, err := mail.NewSMTP(mail.SMTPConfig{
			Host:     a.config.GetString("mail.host"),
			Port:     a.config.GetInt("mail.port"),
			Username: a.config.GetString("mail.username"),
			Password: a.config.GetString("mail.password"),
			From:     a.config.GetString("mail.from"),
		})
		if err != nil {
			slog.Error("failed to init mail", "error", err)
			os.Exit(1)
		}
		a.mail = client

	case "mq":
		driver := a.config.GetString("messaging.driver")
		client, err := messaging.NewFromDriver(driver, messaging.FactoryOptions{
			NSQ: messaging.NSQConfig{
				ProducerAddr: a.config.GetString("messaging.nsq.producer_addr"),
				ProducerConfig: func() *nsq.Config {
					cfg := nsq.NewConfig()
					cfg.DialTimeout = a.config.GetSecond("messaging.nsq.dial_timeout_seconds")
					cfg.WriteTimeout = a.config.GetSecond("messaging.nsq.write_timeout_seconds")
					return cfg
				}(),
			},
			Kafka: messaging.KafkaConfig{
				Brokers:      a.config.GetArray("messaging.kafka.brokers"),
				BatchTimeout: a.config.GetSecond("messaging.kafka.batch_timeout_seconds"),
			},
			NATS: messaging.NATSConfig{
				URL: a.config.GetString("messaging.nats.url"),
				Options: []nats.Option{
					nats.Name(a.config.GetString("messaging.nats.name")),
					nats.MaxReconnects(a.config.GetInt("messaging.nats.max_reconnects")),
					nats.Timeout(a.config.GetSecond("messaging.nats.timeout_seconds")),
					nats.ReconnectWait(a.config.GetSecond("messaging.nats.reconnect_wait_seconds")),
					nats.RetryOnFailedConnect(a.config.GetBool("messaging.nats.retry_on_failed_connect")),
				},
			},
		})
		if err != nil {
			slog.Error("failed to init messaging", "error", err, "driver", driver)
			os.Exit(1)
		}
		a.messaging = client
	}
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		JWT:        a.jwt,
		Instrument: a.ins,
		PublicEndpoints: map[string]map[string]struct{}{
			http.MethodGet: {
				"/":       {},
				"/health": {},
			},
			http.MethodPost: {
				"/auth/login":      {},
				"/auth/verify-otp": {},
				"/auth/token":      {},
			},
		},
	})

	a.router.GET("/health", func(*router.Request) (any, error) {
		return map[string]string{"message": "ok"}, nil
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []struct {
		name string
		fn   func(context.Context) error
	}{
		{
			name: "Instrument",
			fn: func(ctx context.Context) error {
				return a.ins.Shutdown(ctx)
			},
		},
		{
			name: "Messaging",
			fn: func(context.Context) error {
				if a.messaging == nil {
					return nil
				}

				return a.messaging.Close()
			},
		},
		{
			name: "Mail",
			fn: func(context.Context) error {
				if a.mail == nil {
					return nil
				}

				return a.mail.Close()
			},
		},
		{
			name: "Config",
			fn: func(context.Context) error {
				return a.config.Close()
			},
		},
	}
}
