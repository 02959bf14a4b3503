package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/google/uuid"
)

const timeFormat = time.RFC3339Nano

// EncodeCursor turns the last row of a page into an opaque next-page token.
// Lists are ordered by (created_at DESC, id DESC) so both fields are carried.
func EncodeCursor(cursor domain.DocumentCursor) string {
	tokenStr := fmt.Sprintf("%s|%s", cursor.CreatedAt.UTC().Format(timeFormat), cursor.ID)
	return base64.RawURLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (*domain.DocumentCursor, error) {
	decodedBytes, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 {
		return nil, fmt.Errorf("invalid pagination token format (split)")
	}

	createdAt, err := time.Parse(timeFormat, parts[0])
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (created_at parse): %w", err)
	}
	if _, err := uuid.Parse(parts[1]); err != nil {
		return nil, fmt.Errorf("invalid pagination token format (id parse): %w", err)
	}

	return &domain.DocumentCursor{CreatedAt: createdAt, ID: parts[1]}, nil
}

// NextToken returns the token for the page after page, or nil when page was
// shorter than limit and therefore the last one.
func NextToken(page int, limit int, last domain.DocumentCursor) *string {
	if page < limit || page == 0 {
		return nil
	}
	t := EncodeCursor(last)
	return &t
}
