package pgsql

import (
	"strings"
	"time"

	"github.com/dustbill/dustbill_backend/internal/core/domain"
	"github.com/dustbill/dustbill_backend/internal/models"
)

// joinedClientColumns selects the optional client of a document through LEFT JOIN clients c.
const joinedClientColumns = `c.id, c.user_id, c.name, c.email, c.phone, c.address, c.created_at, c.updated_at`

// joinedClient receives the nullable columns of joinedClientColumns.
type joinedClient struct {
	id, userID, name, email, phone, address *string
	createdAt, updatedAt                    *time.Time
}

func (j *joinedClient) targets() []any {
	return []any{&j.id, &j.userID, &j.name, &j.email, &j.phone, &j.address, &j.createdAt, &j.updatedAt}
}

func (j *joinedClient) toDomain() *domain.Client {
	if j.id == nil {
		return nil
	}
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	m := models.Client{
		ClientID: *j.id,
		UserID:   deref(j.userID),
		Name:     deref(j.name),
		Email:    deref(j.email),
		Phone:    deref(j.phone),
		Address:  deref(j.address),
	}
	if j.createdAt != nil {
		m.CreatedAt = *j.createdAt
	}
	if j.updatedAt != nil {
		m.UpdatedAt = *j.updatedAt
	}
	c := toDomainClient(m)
	return &c
}

// cursorArgs splits an optional keyset cursor into nullable query arguments.
func cursorArgs(after *domain.DocumentCursor) (*time.Time, *string) {
	if after == nil {
		return nil, nil
	}
	return &after.CreatedAt, &after.ID
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern turns a search term into an ILIKE ... ESCAPE '\' substring pattern,
// so % and _ typed by the user match literally. An empty term stays empty.
func containsPattern(search string) string {
	if search == "" {
		return ""
	}
	return "%" + likeEscaper.Replace(search) + "%"
}
