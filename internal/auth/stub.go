package auth

import (
	"context"
	"time"

	"github.com/idilsaglam/loginmvi/internal/logutil"
)

var logger = logutil.GetLogger("[auth] ")

// DefaultDelay is the simulated round trip of the stub backend.
const DefaultDelay = 2 * time.Second

// Account is a user known to the stub backend.
type Account struct {
	Username string      `yaml:"username"`
	Password string      `yaml:"password"`
	Profile  UserProfile `yaml:",inline"`
}

// Stub is a simulated backend. After Delay it accepts any credentials when
// Accounts is empty, otherwise only a matching username and password.
type Stub struct {
	Delay    time.Duration
	Accounts []Account
}

// NewStub returns a stub with the default delay that accepts anything.
func NewStub() *Stub { return &Stub{Delay: DefaultDelay} }

func (s *Stub) Login(ctx context.Context, c Credentials) (UserProfile, error) {
	logger.Printf("login %q: waiting %v", c.Username, s.Delay)
	if s.Delay > 0 {
		t := time.NewTimer(s.Delay)
		defer t.Stop()
		select {
		case <-ctx.Done():
			logger.Printf("login %q: %v", c.Username, ctx.Err())
			return UserProfile{}, ctx.Err()
		case <-t.C:
		}
	} else if err := ctx.Err(); err != nil {
		return UserProfile{}, err
	}

	if len(s.Accounts) == 0 {
		return UserProfile{Name: c.Username, Avatar: "avatar"}, nil
	}
	for _, a := range s.Accounts {
		if a.Username == c.Username && a.Password == c.Password {
			p := a.Profile
			if p.Name == "" {
				p.Name = a.Username
			}
			return p, nil
		}
	}
	logger.Printf("login %q: %v", c.Username, ErrBadCredentials)
	return UserProfile{}, ErrBadCredentials
}
