package middleware

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	HeaderIdempotencyKey = "Idempotency-Key"
	HeaderRequestAt      = "X-Request-At"
	HeaderBorrowerID     = "X-Borrower-Id"

	// reservation lifetime while the handler runs; a crashed request frees the key after this
	reservationTTL = 60 * time.Second
	// allowed client/server clock skew for X-Request-At
	maxClockSkew = 10 * time.Minute
	storeTimeout = 2 * time.Second
)

// record is what lives under an idempotency key: first a reservation,
// then the captured response.
type record struct {
	Pending     bool      `json:"pending"`
	Status      int       `json:"status,omitempty"`
	ContentType string    `json:"content_type,omitempty"`
	Body        []byte    `json:"body,omitempty"`
	BodySHA256  string    `json:"body_sha256"`
	RequestAtMS int64     `json:"request_at_ms"`
	StoredAt    time.Time `json:"stored_at"`
}

// Store persists idempotency records in Redis.
type Store struct {
	rdb goredis.Cmdable
}

func NewStore(rdb goredis.Cmdable) *Store { return &Store{rdb: rdb} }

// captureWriter tees the response into a buffer so it can be replayed.
type captureWriter struct {
	http.ResponseWriter
	buf    bytes.Buffer
	status int
}

func (w *captureWriter) Write(b []byte) (int, error) {
	w.buf.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w *captureWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func fail(c echo.Context, code int, msg string) error {
	return c.JSON(code, map[string]string{"error": msg})
}

// Idempotency makes mutating requests safe to retry. The key is scoped by
// method, route, X-Borrower-Id and Idempotency-Key. A repeated request with
// the same body gets the stored response; a different body or a request
// still in flight gets 409. Server errors are not stored so the client may
// retry them.
func Idempotency(store *Store, ttl time.Duration, log *zap.Logger) echo.MiddlewareFunc {
	if log == nil {
		log = zap.NewNop()
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			switch req.Method {
			case http.MethodGet, http.MethodHead, http.MethodOptions:
				return next(c)
			}

			idemKey := strings.TrimSpace(req.Header.Get(HeaderIdempotencyKey))
			if idemKey == "" {
				return fail(c, http.StatusBadRequest, "missing "+HeaderIdempotencyKey)
			}
			if !validIdempotencyKey(idemKey) {
				return fail(c, http.StatusBadRequest, "invalid "+HeaderIdempotencyKey+" format")
			}
			reqAt, err := parseRequestAt(req.Header.Get(HeaderRequestAt))
			if err != nil {
				return fail(c, http.StatusBadRequest, err.Error())
			}
			if skewed(reqAt, nowUTC()) {
				return fail(c, http.StatusBadRequest, HeaderRequestAt+" too skewed")
			}
			borrowerID := strings.TrimSpace(req.Header.Get(HeaderBorrowerID))
			if !reHex32.MatchString(borrowerID) {
				return fail(c, http.StatusBadRequest, "missing or invalid "+HeaderBorrowerID)
			}

			var body []byte
			if req.Body != nil {
				if body, err = io.ReadAll(req.Body); err != nil {
					return fail(c, http.StatusBadRequest, "unreadable body")
				}
			}
			req.Body = io.NopCloser(bytes.NewReader(body))
			sum := bodyHash(body)

			key := buildKey(req.Method, c.Path(), borrowerID, idemKey)
			ctx, cancel := context.WithTimeout(req.Context(), storeTimeout)
			defer cancel()

			reserved, err := store.reserve(ctx, key, record{
				Pending:     true,
				BodySHA256:  sum,
				RequestAtMS: reqAt.UnixMilli(),
				StoredAt:    nowUTC(),
			})
			if err != nil {
				log.Warn("idempotency store unavailable", zap.String("key", key), zap.Error(err))
				return fail(c, http.StatusServiceUnavailable, "idempotency store unavailable")
			}
			if !reserved {
				prev, err := store.load(ctx, key)
				switch {
				case errors.Is(err, goredis.Nil):
					// reservation expired between the two calls
					return fail(c, http.StatusConflict, "request is already in progress")
				case err != nil:
					log.Warn("idempotency record unreadable", zap.String("key", key), zap.Error(err))
					return fail(c, http.StatusServiceUnavailable, "idempotency store unavailable")
				}
				if prev.BodySHA256 != sum {
					return fail(c, http.StatusConflict, HeaderIdempotencyKey+" reused with different body")
				}
				if prev.Pending {
					return fail(c, http.StatusConflict, "request is already in progress")
				}
				c.Response().Header().Set("Idempotent-Replayed", "true")
				return c.Blob(prev.Status, prev.ContentType, prev.Body)
			}

			cw := &captureWriter{ResponseWriter: c.Response().Writer, status: http.StatusOK}
			c.Response().Writer = cw
			if err := next(c); err != nil {
				c.Error(err)
			}

			// fresh context: the request context may already be cancelled
			saveCtx, saveCancel := context.WithTimeout(context.Background(), storeTimeout)
			defer saveCancel()
			if cw.status >= http.StatusInternalServerError {
				if err := store.release(saveCtx, key); err != nil {
					log.Warn("idempotency release failed", zap.String("key", key), zap.Error(err))
				}
				return nil
			}
			final := record{
				Status:      cw.status,
				ContentType: c.Response().Header().Get(echo.HeaderContentType),
				Body:        cw.buf.Bytes(),
				BodySHA256:  sum,
				RequestAtMS: reqAt.UnixMilli(),
				StoredAt:    nowUTC(),
			}
			if err := store.complete(saveCtx, key, final, ttl); err != nil {
				log.Warn("idempotency save failed", zap.String("key", key), zap.Error(err))
			}
			return nil
		}
	}
}
