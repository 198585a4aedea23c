package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"court-booking-engine/internal/pkg/errs"
	"court-booking-engine/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	cursorData := CursorVersionV1 + ":" + strconv.FormatInt(t.UnixMicro(), 10) + "-" + id.String()
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeAfterCursor(cursor string) (time.Time, uuid.UUID, error) {
	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(errs.ErrDomainValidation, "cursor is not base64url")
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return time.Time{}, uuid.Nil, errs.Wrap(errs.ErrDomainValidation, "unsupported cursor version")
	}

	micros, rawID, ok := strings.Cut(payload, "-")
	if !ok {
		return time.Time{}, uuid.Nil, errs.Wrap(errs.ErrDomainValidation, "invalid cursor format: expected '<micros>-<uuid>'")
	}
	timestamp, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(errs.ErrDomainValidation, "invalid cursor timestamp")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return time.Time{}, uuid.Nil, errs.Wrap(errs.ErrDomainValidation, "invalid cursor id")
	}
	return time.UnixMicro(timestamp), id, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}

// PageFrom builds a keyset page. One extra row is requested to detect a following page.
func PageFrom(after string, limit int) (shared.Page, error) {
	page := shared.Page{Limit: ValidateLimit(limit) + 1}
	if after == "" {
		return page, nil
	}
	t, id, err := DecodeAfterCursor(after)
	if err != nil {
		return shared.Page{}, err
	}
	page.AfterCreatedAt, page.AfterID = t, id
	return page, nil
}

// trimPage drops the lookahead row and returns the cursor for the next page, or "".
func trimPage[T any](items []T, page shared.Page, key func(T) (time.Time, uuid.UUID)) ([]T, string) {
	want := page.Limit - 1
	if len(items) <= want {
		return items, ""
	}
	items = items[:want]
	t, id := key(items[want-1])
	return items, EncodeAfterCursor(t, id)
}
