// Package auth defines the login capability consumed by the login screen and
// a simulated backend for it.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/idilsaglam/loginmvi/internal/mvi"
)

// Form field names.
const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// ErrBadCredentials is returned when no account matches.
var ErrBadCredentials = errors.New("bad credentials")

// Credentials is what the user typed.
type Credentials struct {
	Username string
	Password string
}

// UserProfile is returned by a successful login.
type UserProfile struct {
	Name   string `yaml:"name"`
	Avatar string `yaml:"avatar"`
}

// Client performs a login. Implementations must honour ctx cancellation.
type Client interface {
	Login(ctx context.Context, c Credentials) (UserProfile, error)
}

// Fields returns the login form: username then password, both required.
func Fields() []mvi.Field {
	return []mvi.Field{
		{Name: FieldUsername, Label: "username"},
		{Name: FieldPassword, Label: "password"},
	}
}

// Submitter adapts a Client to the container's submit capability.
func Submitter(c Client) mvi.Submitter[UserProfile] {
	return mvi.SubmitFunc[UserProfile](func(ctx context.Context, fields []mvi.Field) (UserProfile, error) {
		var cred Credentials
		for _, f := range fields {
			switch f.Name {
			case FieldUsername:
				cred.Username = strings.TrimSpace(f.Value)
			case FieldPassword:
				cred.Password = f.Value
			}
		}
		if cred.Username == "" {
			return UserProfile{}, fmt.Errorf("login: missing %s field", FieldUsername)
		}
		return c.Login(ctx, cred)
	})
}
