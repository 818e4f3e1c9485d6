package main

import (
	"fmt"
	"log/slog"

	"github.com/BruksfildServices01/mester-scheduler/internal/audit"
	"github.com/BruksfildServices01/mester-scheduler/internal/config"
	dbpkg "github.com/BruksfildServices01/mester-scheduler/internal/db"
	domainAppointment "github.com/BruksfildServices01/mester-scheduler/internal/domain/appointment"
	domainLead "github.com/BruksfildServices01/mester-scheduler/internal/domain/lead"
	domainMessage "github.com/BruksfildServices01/mester-scheduler/internal/domain/message"
	domainProposal "github.com/BruksfildServices01/mester-scheduler/internal/domain/proposal"
	"github.com/BruksfildServices01/mester-scheduler/internal/events"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/memory"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/notify"
	"github.com/BruksfildServices01/mester-scheduler/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/mester-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/mester-scheduler/internal/routes"
)

// ======================================================
// STORAGE
// ======================================================

type storage struct {
	appointments domainAppointment.Repository
	proposals    domainProposal.Repository
	leads        domainLead.Repository
	threads      domainMessage.Repository

	// só no postgres
	audit *audit.Logger
	close func()
}

func openStorage(cfg *config.Config, log *slog.Logger) (*storage, error) {
	switch cfg.StorageDriver {
	case "memory":
		log.Warn("using in-memory storage, data is lost on restart")
		s := memory.NewStore()
		return &storage{
			appointments: s.Appointments(),
			proposals:    s.Proposals(),
			leads:        s.Leads(),
			threads:      s.Messages(),
			close:        func() {},
		}, nil

	case "postgres":
		db, err := dbpkg.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		return &storage{
			appointments: infraRepo.NewAppointmentGormRepository(db),
			proposals:    infraRepo.NewProposalGormRepository(db),
			leads:        infraRepo.NewLeadGormRepository(db),
			threads:      infraRepo.NewMessageGormRepository(db),
			audit:        audit.New(db),
			close: func() {
				if sqlDB, err := db.DB(); err == nil {
					_ = sqlDB.Close()
				}
			},
		}, nil
	}

	return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
}

// ======================================================
// NOTIFY
// ======================================================

type notifier struct {
	publisher events.Publisher
	close     func()
}

func openNotifier(cfg *config.Config, log *slog.Logger) (*notifier, error) {
	closeWith := func(name string, fn func() error) func() {
		return func() {
			if err := fn(); err != nil {
				log.Error("notifier close", "driver", name, "error", err)
			}
		}
	}

	switch cfg.NotifyDriver {
	case "", "log":
		return &notifier{publisher: notify.NewLogPublisher(log), close: func() {}}, nil

	case "redis":
		p, err := notify.NewRedisPublisher(cfg.RedisURL, cfg.RedisChannel)
		if err != nil {
			return nil, err
		}
		return &notifier{publisher: p, close: closeWith("redis", p.Close)}, nil

	case "nats":
		p, err := notify.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubject)
		if err != nil {
			return nil, err
		}
		return &notifier{publisher: p, close: closeWith("nats", p.Close)}, nil

	case "kafka":
		p := notify.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		return &notifier{publisher: p, close: closeWith("kafka", p.Close)}, nil
	}

	return nil, fmt.Errorf("unknown NOTIFY_DRIVER %q", cfg.NotifyDriver)
}

// ======================================================
// PAYMENTS
// ======================================================

// wirePayments só liga o provedor que tem credencial; os campos ficam nil
// (interface nil, não ponteiro nil) quando desligados.
func wirePayments(cfg *config.Config, log *slog.Logger, deps *routes.Deps) error {
	if cfg.MercadoPagoAccessToken != "" {
		mp, err := payment.NewMercadoPagoConfirmer(cfg.MercadoPagoAccessToken)
		if err != nil {
			return err
		}
		deps.MercadoPago = mp
	} else {
		log.Warn("mercadopago webhook disabled, MERCADOPAGO_ACCESS_TOKEN not set")
	}

	stripe := payment.NewStripeConfirmer(cfg.StripeWebhookSecret, cfg.StripeWebhookTolerance)
	if stripe.Enabled() {
		deps.Stripe = stripe
	} else {
		log.Warn("stripe webhook disabled, STRIPE_WEBHOOK_SECRET not set")
	}

	return nil
}
