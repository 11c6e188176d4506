// Package login implements the Facebook login callback: it trades the
// authorization code for a page access token, encrypts the token with a
// freshly derived per-record key, and stores it with the user's profile.
package login

//go:generate mockgen -source=handler.go -destination=mocks_test.go -package=login

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	apperrors "github.com/alexjbarnes/page-token-broker/internal/errors"
	"github.com/alexjbarnes/page-token-broker/internal/graph"
	"github.com/alexjbarnes/page-token-broker/internal/models"
	"github.com/alexjbarnes/page-token-broker/internal/tokencrypt"
	"github.com/go-chi/chi/v5/middleware"
)

// errorBody is the only failure detail sent to the client.
const errorBody = "An error occurred"

const thankYouPage = `<!DOCTYPE html>
<html>
<head>
    <title>Thank You!</title>
    <style>
        body { font-family: Arial; text-align: center; margin-top: 50px; }
    </style>
</head>
<body>
    <h1>Thank You!</h1>
    <p>For powering your Facebook page with River AI.</p>
</body>
</html>
`

// GraphAPI is the subset of the Graph client the callback needs.
type GraphAPI interface {
	ExchangeCode(ctx context.Context, clientID, clientSecret, code, redirectURI string) (string, error)
	Me(ctx context.Context, userAccessToken string) (*graph.Profile, error)
	PageAccessToken(ctx context.Context, userAccessToken string) (string, error)
}

// TokenStore receives one record per successful callback.
type TokenStore interface {
	Upsert(rec models.TokenRecord)
}

// Credentials are the app settings used by the callback.
type Credentials struct {
	ClientID      string
	ClientSecret  string
	RedirectURI   string
	EncryptionKey string
}

// Handler serves GET /webhook/logins.
type Handler struct {
	creds  Credentials
	graph  GraphAPI
	store  TokenStore
	logger *slog.Logger
	now    func() time.Time
}

// NewHandler creates a callback handler.
func NewHandler(creds Credentials, g GraphAPI, s TokenStore, logger *slog.Logger) *Handler {
	return &Handler{
		creds:  creds,
		graph:  g,
		store:  s,
		logger: logger,
		now:    time.Now,
	}
}

// Callback runs the exchange for one authorization code and stores the
// result. The Graph calls run in order, each using the previous result.
// Nothing is stored unless all of them succeed.
func (h *Handler) Callback(ctx context.Context, code string) (*models.TokenRecord, error) {
	if code == "" {
		return nil, apperrors.ErrMissingCode
	}

	userToken, err := h.graph.ExchangeCode(ctx, h.creds.ClientID, h.creds.ClientSecret, code, h.creds.RedirectURI)
	if err != nil {
		return nil, err
	}

	profile, err := h.graph.Me(ctx, userToken)
	if err != nil {
		return nil, err
	}

	pageToken, err := h.graph.PageAccessToken(ctx, userToken)
	if err != nil {
		return nil, err
	}

	now := h.now().UTC()
	hashKey := tokencrypt.NewHashKey(profile.ID, now)

	encrypted, err := tokencrypt.Encrypt(pageToken, tokencrypt.DeriveKey(hashKey, h.creds.EncryptionKey))
	if err != nil {
		return nil, fmt.Errorf("encrypting page token: %w", err)
	}

	rec := models.TokenRecord{
		UserID:         profile.ID,
		EncryptedToken: encrypted,
		HashKey:        hashKey,
		Name:           profile.Name,
		Email:          profile.Email,
		Timestamp:      now,
	}
	h.store.Upsert(rec)

	return &rec, nil
}

// ServeHTTP handles the redirect from the Facebook login dialog.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := h.logger
	if reqID := middleware.GetReqID(r.Context()); reqID != "" {
		logger = logger.With(slog.String("request_id", reqID))
	}

	rec, err := h.Callback(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		logger.Error("processing login callback", slog.String("error", err.Error()))
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, errorBody)

		return
	}

	logger.Info("page token stored",
		slog.String("user_id", rec.UserID),
		slog.Time("timestamp", rec.Timestamp),
	)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, thankYouPage)
}
