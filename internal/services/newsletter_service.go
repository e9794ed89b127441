package services

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"charter/internal/brevo"
	intdb "charter/internal/db"
	"charter/internal/domain"
	"charter/internal/domain/models"
	"charter/internal/repositories"
	"charter/internal/utils"
)

const unsubscribeAudience = "newsletter-unsubscribe"

const (
	SubscriptionPending  = "pending"
	SubscriptionVerified = "verified"
)

// NewsletterService runs the double opt-in flow and mirrors verified
// subscribers into a Brevo contact list.
type NewsletterService struct {
	DB            intdb.DBTX
	Mailer        brevo.Mailer
	Contacts      brevo.Contacts
	ListID        int64
	TemplateID    int64
	PublicBaseURL string
	Secret        string
	NotifyTimeout time.Duration
	RequestID     string
	Now           func() time.Time
}

func (s NewsletterService) repo() repositories.NewsletterRepo {
	return repositories.NewsletterRepo{DB: s.DB}
}

func (s NewsletterService) mailer() brevo.Mailer {
	if s.Mailer != nil {
		return s.Mailer
	}
	return brevo.DisabledMailer{}
}

func (s NewsletterService) contacts() brevo.Contacts {
	if s.Contacts != nil {
		return s.Contacts
	}
	return brevo.DisabledContacts{}
}

func (s NewsletterService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s NewsletterService) upstreamCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := s.NotifyTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}

// Subscribe registers email as a pending subscriber and sends the verification link.
// Repeating it for a pending address issues a fresh token.
func (s NewsletterService) Subscribe(ctx context.Context, rawEmail string) (string, error) {
	email := utils.NormalizeEmail(rawEmail)
	if email == "" {
		return "", domain.Required("email")
	}
	if !utils.LooksLikeEmail(email) {
		return "", domain.ValidationError{Field: "email", Msg: "email is not a valid address"}
	}

	token := uuid.NewString()
	existing, err := s.repo().GetByEmail(ctx, email)
	switch {
	case err == nil && existing.Verified:
		utils.LogEvent(s.RequestID, "newsletter", "subscribe", "already verified")
		return SubscriptionVerified, nil
	case err == nil:
		if err := s.repo().RotateToken(ctx, existing.ID, token); err != nil {
			return "", domain.InternalError{Msg: "Error subscribing to newsletter", Err: err}
		}
	case intdb.IsNoRows(err):
		if _, err := s.repo().Insert(ctx, email, token); err != nil {
			if !intdb.IsDuplicateKey(err) {
				return "", domain.InternalError{Msg: "Error subscribing to newsletter", Err: err}
			}
			// lost a race with a concurrent subscribe; the other request sends the mail
			return SubscriptionPending, nil
		}
	default:
		return "", domain.InternalError{Msg: "Error subscribing to newsletter", Err: err}
	}

	if err := s.sendVerification(ctx, email, token); err != nil {
		utils.LogWarn(s.RequestID, "newsletter", "send_verification", err)
	}
	utils.LogEvent(s.RequestID, "newsletter", "subscribe", "verification issued")
	return SubscriptionPending, nil
}

func (s NewsletterService) sendVerification(ctx context.Context, email, token string) error {
	unsubscribe, err := s.UnsubscribeToken(email)
	if err != nil {
		return err
	}
	ctx, cancel := s.upstreamCtx(ctx)
	defer cancel()
	return s.mailer().SendTemplate(ctx, brevo.TemplateEmail{
		To:         []brevo.Recipient{{Email: email}},
		TemplateID: s.TemplateID,
		Params: map[string]any{
			"verify_url":      s.link("/api/newsletter/verify/" + url.PathEscape(token) + "/"),
			"unsubscribe_url": s.link("/api/newsletter/unsubscribe/?token=" + url.QueryEscape(unsubscribe)),
		},
	})
}

func (s NewsletterService) link(path string) string {
	return strings.TrimRight(s.PublicBaseURL, "/") + path
}

// Verify confirms the subscriber owning token and adds it to the contact list.
func (s NewsletterService) Verify(ctx context.Context, token string) (models.Newsletter, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.Newsletter{}, domain.Required("token")
	}
	n, err := s.repo().GetByToken(ctx, token)
	if err != nil {
		return models.Newsletter{}, lookupError("subscription", "token", err)
	}
	if !n.Verified {
		if err := s.repo().MarkVerified(ctx, n.ID); err != nil {
			return models.Newsletter{}, domain.InternalError{Msg: "Error verifying subscription", Err: err}
		}
		now := s.now()
		n.Verified = true
		n.VerifiedAt = &now
	}

	upCtx, cancel := s.upstreamCtx(ctx)
	defer cancel()
	if err := s.contacts().UpsertContact(upCtx, n.Email, contactAttributes(n), s.ListID); err != nil {
		utils.LogWarn(s.RequestID, "newsletter", "add_contact", err)
	}
	utils.LogEvent(s.RequestID, "newsletter", "verify", fmt.Sprintf("subscriber_id=%d", n.ID))
	return n, nil
}

func contactAttributes(n models.Newsletter) map[string]any {
	verified := ""
	if n.VerifiedAt != nil {
		verified = utils.FormatDate(*n.VerifiedAt)
	}
	return map[string]any{
		"SUBSCRIPTION_DATE": utils.FormatDate(n.CreatedAt),
		"VERIFICATION_DATE": verified,
		"SOURCE":            "Website Newsletter",
	}
}

// Unsubscribe removes the subscriber named by a signed token or, failing that, by email.
func (s NewsletterService) Unsubscribe(ctx context.Context, req models.UnsubscribeRequest) error {
	email := utils.NormalizeEmail(req.Email.String())
	if token := req.Token.String(); token != "" {
		subject, err := s.ParseUnsubscribeToken(token)
		if err != nil {
			return domain.ValidationError{Field: "token", Msg: "token is invalid", Err: err}
		}
		email = subject
	}
	if email == "" {
		return domain.Required("email")
	}

	found, err := s.repo().DeleteByEmail(ctx, email)
	if err != nil {
		return domain.InternalError{Msg: "Error unsubscribing", Err: err}
	}
	if !found {
		return domain.NotFoundError{Resource: "subscription", Field: "email"}
	}

	upCtx, cancel := s.upstreamCtx(ctx)
	defer cancel()
	if err := s.contacts().RemoveFromList(upCtx, email, s.ListID); err != nil {
		utils.LogWarn(s.RequestID, "newsletter", "remove_contact", err)
	}
	utils.LogEvent(s.RequestID, "newsletter", "unsubscribe", "subscriber removed")
	return nil
}

func (s NewsletterService) UnsubscribeToken(email string) (string, error) {
	if s.Secret == "" {
		return "", errors.New("newsletter secret not configured")
	}
	claims := jwt.RegisteredClaims{
		Subject:  utils.NormalizeEmail(email),
		Audience: jwt.ClaimStrings{unsubscribeAudience},
		IssuedAt: jwt.NewNumericDate(s.now()),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.Secret))
}

// ParseUnsubscribeToken returns the email a token was issued for.
func (s NewsletterService) ParseUnsubscribeToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return []byte(s.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithAudience(unsubscribeAudience))
	if err != nil {
		return "", err
	}
	if !parsed.Valid || claims.Subject == "" {
		return "", errors.New("invalid token")
	}
	return claims.Subject, nil
}

// SyncVerified pushes every verified subscriber to the contact list.
// It returns how many were synced out of the total, and the first error seen.
func (s NewsletterService) SyncVerified(ctx context.Context) (synced, total int, err error) {
	subs, err := s.repo().ListVerified(ctx)
	if err != nil {
		return 0, 0, err
	}
	var firstErr error
	for _, n := range subs {
		upCtx, cancel := s.upstreamCtx(ctx)
		err := s.contacts().UpsertContact(upCtx, n.Email, contactAttributes(n), s.ListID)
		cancel()
		if err != nil {
			utils.LogWarn(s.RequestID, "newsletter", "sync_contact", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		synced++
	}
	return synced, len(subs), firstErr
}
