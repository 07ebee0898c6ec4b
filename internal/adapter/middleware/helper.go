package middleware

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"time"
)

func bodyHash(b []byte) string { s := sha256.Sum256(b); return hex.EncodeToString(s[:]) }

var nowUTC = func() time.Time { return time.Now().UTC() }

func buildKey(method, route, borrowerID, idemKey string) string {
	return "idemp:v1:" + strings.ToLower(method) + ":" + route + ":" + borrowerID + ":" + idemKey
}

var (
	reUUID  = regexp.MustCompile(`^[a-f0-9]{8}-[a-f0-9]{4}-[1-5][a-f0-9]{3}-[89ab][a-f0-9]{3}-[a-f0-9]{12}$`)
	reHex32 = regexp.MustCompile(`^[a-f0-9]{32}$`)
)

// validIdempotencyKey accepts a lowercase UUID (v1-v5) or 32 lowercase hex chars.
func validIdempotencyKey(k string) bool {
	return reUUID.MatchString(k) || reHex32.MatchString(k)
}

// parseRequestAt accepts:
//   - epoch seconds ("1736123456")
//   - epoch milliseconds ("1736123456789")
//   - RFC3339 / RFC3339Nano with a zone ("2025-09-05T10:00:00+05:30" or "...Z")
func parseRequestAt(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, errors.New("missing " + HeaderRequestAt)
	}
	if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
		if n > 1e12 {
			return time.UnixMilli(n).UTC(), nil
		}
		return time.Unix(n, 0).UTC(), nil
	}
	// RFC3339Nano also parses values without fractional seconds
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, errors.New(HeaderRequestAt + " must be epoch (s/ms) or RFC3339 with timezone")
}

func skewed(at, now time.Time) bool {
	return at.Before(now.Add(-maxClockSkew)) || at.After(now.Add(maxClockSkew))
}

// ---- Store operations ----

func (s *Store) reserve(ctx context.Context, key string, r record) (bool, error) {
	payload, err := json.Marshal(r)
	if err != nil {
		return false, err
	}
	return s.rdb.SetNX(ctx, key, payload, reservationTTL).Result()
}

func (s *Store) load(ctx context.Context, key string) (record, error) {
	var r record
	v, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return r, err
	}
	err = json.Unmarshal(v, &r)
	return r, err
}

func (s *Store) complete(ctx context.Context, key string, r record, ttl time.Duration) error {
	payload, err := json.Marshal(r)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key, payload, ttl).Err()
}

func (s *Store) release(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
