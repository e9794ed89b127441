package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"charter/internal/domain"
	"charter/internal/utils"
)

// DefaultNewsletterSecret signs unsubscribe tokens when NEWSLETTER_SECRET is unset.
const DefaultNewsletterSecret = "change-me-newsletter-secret"

type Env struct {
	AppAddr string
	GinMode string

	DBDSN      string
	DBUser     string
	DBPassword string
	DBHost     string
	DBName     string

	CORSAllowedOrigins []string
	PublicBaseURL      string

	AdminEmail string
	AdminName  string

	SendEmail               bool
	BrevoAPIKey             string
	BrevoBaseURL            string
	BrevoContactListID      int64
	TemplateNewBooking      int64
	TemplateNewsletterOptIn int64
	NotifyTimeout           time.Duration
	NotifyStrict            bool

	CustomerPolicy   string
	RequirePhone     bool
	RequireCountry   bool
	RequireTrip      bool
	BookingStatuses  []string
	NewsletterSecret string
}

// LoadEnv reads .env (when present) and the process environment.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		utils.Logger.WithError(err).Warn("failed to load .env")
	}

	return Env{
		AppAddr: getEnv("APP_ADDR", ":8080"),
		GinMode: strings.TrimSpace(os.Getenv("GIN_MODE")),

		DBDSN:      strings.TrimSpace(os.Getenv("DB_DSN")),
		DBUser:     getEnv("DB_USER", "root"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBHost:     getEnv("DB_HOST", "127.0.0.1:3306"),
		DBName:     getEnv("DB_NAME", "charter"),

		CORSAllowedOrigins: getList("CORS_ALLOWED_ORIGINS", []string{
			"http://localhost:3000",
			"http://127.0.0.1:3000",
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		}),
		PublicBaseURL: strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),

		AdminEmail: strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
		AdminName:  getEnv("ADMIN_NAME", "Admin"),

		SendEmail:               getBool("SEND_EMAIL", false),
		BrevoAPIKey:             strings.TrimSpace(os.Getenv("BREVO_API_KEY")),
		BrevoBaseURL:            getEnv("BREVO_BASE_URL", "https://api.brevo.com/v3"),
		BrevoContactListID:      getInt("BREVO_CONTACT_LIST_ID", 0),
		TemplateNewBooking:      getInt("BREVO_TEMPLATE_NEW_BOOKING", 2),
		TemplateNewsletterOptIn: getInt("BREVO_TEMPLATE_NEWSLETTER_VERIFY", 3),
		NotifyTimeout:           getDuration("NOTIFY_TIMEOUT", 10*time.Second),
		NotifyStrict:            getBool("NOTIFY_STRICT", false),

		CustomerPolicy:   strings.ToLower(getEnv("CUSTOMER_POLICY", domain.CustomerPolicyUpsert)),
		RequirePhone:     getBool("BOOKING_REQUIRE_PHONE", false),
		RequireCountry:   getBool("BOOKING_REQUIRE_COUNTRY", false),
		RequireTrip:      getBool("BOOKING_REQUIRE_TRIP", false),
		BookingStatuses:  getList("BOOKING_STATUSES", domain.DefaultStatuses),
		NewsletterSecret: getEnv("NEWSLETTER_SECRET", DefaultNewsletterSecret),
	}
}

// Warnings lists settings that work but should not reach production.
func (e Env) Warnings() []string {
	var out []string
	if e.NewsletterSecret == DefaultNewsletterSecret {
		out = append(out, "NEWSLETTER_SECRET is unset; unsubscribe links are signed with a public default")
	}
	return out
}

// BookingConfig derives the workflow toggles handed to the booking service.
func (e Env) BookingConfig() domain.BookingConfig {
	policy := e.CustomerPolicy
	if policy != domain.CustomerPolicyInsert {
		policy = domain.CustomerPolicyUpsert
	}
	return domain.BookingConfig{
		CustomerPolicy: policy,
		RequirePhone:   e.RequirePhone,
		RequireCountry: e.RequireCountry,
		RequireTrip:    e.RequireTrip,
		NotifyStrict:   e.NotifyStrict,
		AdminEmail:     e.AdminEmail,
		AdminName:      e.AdminName,
		TemplateID:     e.TemplateNewBooking,
		Workflow:       domain.NewStatusWorkflow(e.BookingStatuses),
	}
}

func getEnv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getInt(key string, def int64) int64 {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		utils.Logger.WithField("key", key).Warn("invalid integer in env, using default")
		return def
	}
	return n
}

func getDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

func getList(key string, def []string) []string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	out := []string{}
	for _, p := range strings.Split(v, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
