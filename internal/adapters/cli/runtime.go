package cli

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"invoice-manager/internal/app"
	"invoice-manager/internal/config"
	"invoice-manager/internal/core"
	"invoice-manager/internal/db"
	"invoice-manager/internal/document"
	"invoice-manager/internal/logger"
	"invoice-manager/internal/notify"
)

// runtime is the wired service graph shared by every command that touches the database.
type runtime struct {
	pool *pgxpool.Pool
	svc  app.ApplicationService
}

func (r *runtime) Close() {
	r.pool.Close()
}

func newRuntime(ctx context.Context, c *config.Config) (*runtime, error) {
	pool, err := db.NewPool(ctx, c.DatabaseURL)
	if err != nil {
		return nil, err
	}

	log := logger.WithComponent("app")
	idGen := core.NewIDGenerator(nil)
	companies := core.NewCompanyService(pool, idGen)
	pos := core.NewPurchaseOrderService(pool, logger.WithComponent("purchase_orders"))
	invoices := core.NewInvoiceService(pool, pos, idGen, logger.WithComponent("invoices"))
	renderer := document.NewRenderer(c.InvoiceDir)

	var mailer app.InvoiceMailer
	if c.SMTPHost != "" {
		sender, err := notify.NewSender(notify.SMTPConfig{
			Host:     c.SMTPHost,
			Port:     c.SMTPPort,
			Username: c.SMTPUsername,
			Password: c.SMTPPassword,
			From:     c.MailFrom,
		}, logger.WithComponent("mail"))
		if err != nil {
			pool.Close()
			return nil, err
		}
		mailer = sender
	} else {
		log.Warn().Msg("SMTP_HOST is not set, invoice emails are disabled")
	}

	return &runtime{
		pool: pool,
		svc:  app.NewAppService(companies, pos, invoices, renderer, mailer, log),
	}, nil
}

// withRuntime opens the service graph for the duration of fn.
func withRuntime(ctx context.Context, fn func(svc app.ApplicationService) error) error {
	rt, err := newRuntime(ctx, cfg)
	if err != nil {
		return err
	}
	defer rt.Close()
	return fn(rt.svc)
}
