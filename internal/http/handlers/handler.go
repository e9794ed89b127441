package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"charter/internal/brevo"
	intconfig "charter/internal/config"
	intdb "charter/internal/db"
	"charter/internal/domain"
	"charter/internal/http/middleware"
	"charter/internal/services"
	"charter/internal/utils"
)

// Handler carries the dependencies shared by every endpoint.
type Handler struct {
	DB                 *sqlx.DB
	Booking            domain.BookingConfig
	Mailer             brevo.Mailer
	Contacts           brevo.Contacts
	ContactListID      int64
	NewsletterTemplate int64
	NewsletterSecret   string
	PublicBaseURL      string
	NotifyTimeout      time.Duration
}

// New wires the handler from configuration. Without SEND_EMAIL or an API key
// mail is logged instead of sent; without a key list sync is skipped.
func New(env intconfig.Env, db *sqlx.DB) Handler {
	client := brevo.NewClient(env.BrevoAPIKey, env.BrevoBaseURL, env.NotifyTimeout)

	var mailer brevo.Mailer = brevo.DisabledMailer{}
	var contacts brevo.Contacts = brevo.DisabledContacts{}
	if client.APIKey != "" {
		contacts = client
		if env.SendEmail {
			mailer = client
		}
	} else if env.SendEmail {
		utils.Logger.Warn("SEND_EMAIL is on but BREVO_API_KEY is empty, email disabled")
	}

	return Handler{
		DB:                 db,
		Booking:            env.BookingConfig(),
		Mailer:             mailer,
		Contacts:           contacts,
		ContactListID:      env.BrevoContactListID,
		NewsletterTemplate: env.TemplateNewsletterOptIn,
		NewsletterSecret:   env.NewsletterSecret,
		PublicBaseURL:      env.PublicBaseURL,
		NotifyTimeout:      env.NotifyTimeout,
	}
}

func (h Handler) q() intdb.DBTX {
	if h.DB != nil {
		return h.DB
	}
	return nil
}

func (h Handler) catalog() services.CatalogService {
	return services.CatalogService{DB: h.q()}
}

func (h Handler) bookings(c *gin.Context) services.BookingService {
	return services.BookingService{
		DB:            h.DB,
		Config:        h.Booking,
		Mailer:        h.Mailer,
		NotifyTimeout: h.NotifyTimeout,
		RequestID:     middleware.GetRequestID(c),
	}
}

func (h Handler) contact(c *gin.Context) services.ContactService {
	return services.ContactService{DB: h.DB, Config: h.Booking, RequestID: middleware.GetRequestID(c)}
}

func (h Handler) newsletter(c *gin.Context) services.NewsletterService {
	return services.NewsletterService{
		DB:            h.q(),
		Mailer:        h.Mailer,
		Contacts:      h.Contacts,
		ListID:        h.ContactListID,
		TemplateID:    h.NewsletterTemplate,
		PublicBaseURL: h.PublicBaseURL,
		Secret:        h.NewsletterSecret,
		NotifyTimeout: h.NotifyTimeout,
		RequestID:     middleware.GetRequestID(c),
	}
}

func (h Handler) admin(c *gin.Context) services.AdminService {
	return services.AdminService{DB: h.DB, Workflow: h.Booking.Workflow, RequestID: middleware.GetRequestID(c)}
}

func (h Handler) docs(c *gin.Context) services.DocsService {
	return services.DocsService{DB: h.q(), RequestID: middleware.GetRequestID(c)}
}
