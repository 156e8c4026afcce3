package student

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Classes and Gender are enumerated values. No value set is enforced; the
// column stores whatever the client sends.
type (
	Classes string
	Gender  string
)

// MajorID references a major. It decodes from a JSON number or a numeric
// string such as "3".
type MajorID int

func (m *MajorID) UnmarshalJSON(b []byte) error {
	raw := string(b)
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fmt.Errorf("major_id: %s is not an integer", b)
	}
	*m = MajorID(n)
	return nil
}

type Student struct {
	bun.BaseModel `bun:"table:students,alias:s"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	FirstName string    `bun:"first_name" json:"firstName"`
	LastName  string    `bun:"last_name" json:"lastName"`
	Classes   Classes   `bun:"classes" json:"classes"`
	MajorID   *MajorID  `bun:"major_id" json:"major_id"`
	Gender    Gender    `bun:"gender" json:"gender"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`
}

// Patch holds the fields of an update request. Nil fields are left as they are.
type Patch struct {
	FirstName *string  `json:"firstName"`
	LastName  *string  `json:"lastName"`
	Classes   *Classes `json:"classes"`
	MajorID   *MajorID `json:"major_id"`
	Gender    *Gender  `json:"gender"`
}
