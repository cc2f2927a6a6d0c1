package contact

import (
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fernandokaraka/portugal-engenharia-novo/internal/httpx"
	"github.com/fernandokaraka/portugal-engenharia-novo/internal/observability"
)

// Public error messages of the relay endpoint.
const (
	MsgMethodNotAllowed = "Method not allowed"
	MsgSpam             = "spam"
	MsgMissingFields    = "Missing required fields"
	MsgInvalidEmail     = "Invalid email"
	MsgMailerFailure    = "Mailer failure"
	MsgTooManyRequests  = "Too many requests"
	MsgTooLarge         = "Payload too large"
)

// DefaultMaxUpload caps the request body when no limit is configured.
const DefaultMaxUpload int64 = 10 << 20

// multipartOverhead is allowed on top of the upload cap for the other form fields.
const multipartOverhead int64 = 1 << 20

// Handler is the contact relay endpoint.
type Handler struct {
	mailer    Mailer
	sender    Sender
	limiter   *Limiter
	maxUpload int64
	now       func() time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithLimiter throttles submissions per client IP.
func WithLimiter(l *Limiter) HandlerOption {
	return func(h *Handler) { h.limiter = l }
}

// WithMaxUpload caps the accepted request body size.
func WithMaxUpload(n int64) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxUpload = n
		}
	}
}

// WithClock overrides the time source for the Date header.
func WithClock(now func() time.Time) HandlerOption {
	return func(h *Handler) {
		if now != nil {
			h.now = now
		}
	}
}

// NewHandler returns the relay endpoint delivering through mailer.
func NewHandler(mailer Mailer, sender Sender, opts ...HandlerOption) *Handler {
	h := &Handler{
		mailer:    mailer,
		sender:    sender,
		maxUpload: DefaultMaxUpload,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// ServeHTTP answers preflights, rejects other methods before reading the body, then
// validates, composes and sends the submission.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodOptions:
		httpx.WriteOK(w)
		return
	case http.MethodPost:
	default:
		w.Header().Set("Allow", "POST, OPTIONS")
		httpx.WriteError(w, http.StatusMethodNotAllowed, MsgMethodNotAllowed)
		return
	}

	logger := observability.FromContext(r.Context())

	if !h.limiter.Allow(clientKey(r)) {
		logger.Warn("contact rate limited")
		w.Header().Set("Retry-After", "60")
		httpx.WriteError(w, http.StatusTooManyRequests, MsgTooManyRequests)
		return
	}

	limit := h.maxUpload + multipartOverhead
	if r.ContentLength > limit {
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, MsgTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)

	sub, err := ParseSubmission(r, h.maxUpload)
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}
	if err != nil {
		httpx.WriteError(w, http.StatusRequestEntityTooLarge, MsgTooLarge)
		return
	}

	if err := sub.Validate(); err != nil {
		status, msg := validationResponse(err)
		logger.Info("contact rejected", zap.String("reason", msg))
		httpx.WriteError(w, status, msg)
		return
	}

	msg := Compose(sub, h.sender, h.now())
	if err := h.mailer.Send(r.Context(), msg); err != nil {
		logger.Error("contact delivery failed",
			zap.String("reply_to", observability.SanitizeEmail(sub.Email)),
			zap.Error(err),
		)
		httpx.WriteError(w, http.StatusInternalServerError, MsgMailerFailure)
		return
	}

	fields := []zap.Field{zap.String("reply_to", observability.SanitizeEmail(sub.Email))}
	if sub.Attachment != nil {
		fields = append(fields, zap.String("attachment", sub.Attachment.Filename))
	}
	logger.Info("contact delivered", fields...)
	httpx.WriteOK(w)
}

func validationResponse(err error) (int, string) {
	switch {
	case errors.Is(err, ErrSpam):
		return http.StatusBadRequest, MsgSpam
	case errors.Is(err, ErrInvalidEmail):
		return http.StatusUnprocessableEntity, MsgInvalidEmail
	default:
		return http.StatusUnprocessableEntity, MsgMissingFields
	}
}

// clientKey is the remote IP; chi's RealIP middleware has already applied proxy headers.
func clientKey(r *http.Request) string {
	addr := strings.TrimSpace(r.RemoteAddr)
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
