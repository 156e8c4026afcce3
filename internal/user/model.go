package user

import (
	"time"

	"github.com/haifazahra-ui/pi-sosmed/internal/password"

	"github.com/uptrace/bun"
)

// User is an account that can log in. Password always holds a bcrypt hash
// once the user has gone through PrepareForPersist.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Username  string    `bun:"username,notnull" json:"username"`
	Password  string    `bun:"password,notnull" json:"-"` // Never expose password in JSON
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp" json:"updatedAt"`

	passwordChanged bool `bun:"-"`
}

// New returns a user whose plaintext password still has to be hashed.
func New(username, plain string) *User {
	u := &User{Username: username}
	u.SetPassword(plain)
	return u
}

// SetPassword replaces the password with a plaintext value that will be
// hashed on the next PrepareForPersist.
func (u *User) SetPassword(plain string) {
	u.Password = plain
	u.passwordChanged = true
}

// PasswordChanged reports whether Password currently holds plaintext.
func (u *User) PasswordChanged() bool {
	return u.passwordChanged
}

// PrepareForPersist hashes the password if it changed since the last
// persist. It must run before every insert or update.
func (u *User) PrepareForPersist(h password.Hasher) error {
	if !u.passwordChanged {
		return nil
	}
	hashed, err := h.Hash(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	u.passwordChanged = false
	return nil
}

// VerifyPassword checks candidate against the stored hash.
func (u *User) VerifyPassword(h password.Hasher, candidate string) (bool, error) {
	return h.Compare(candidate, u.Password)
}
