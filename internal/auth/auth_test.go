package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/idilsaglam/loginmvi/internal/mvi"
)

func TestStub_AcceptsAnythingWithoutAccounts(t *testing.T) {
	s := &Stub{}
	got, err := s.Login(context.Background(), Credentials{"admin", "1234"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if diff := cmp.Diff(UserProfile{Name: "admin", Avatar: "avatar"}, got); diff != "" {
		t.Errorf("profile (-want +got):\n%s", diff)
	}
}

func TestStub_Accounts(t *testing.T) {
	s := &Stub{Accounts: []Account{
		{Username: "admin", Password: "1234", Profile: UserProfile{Name: "Administrator", Avatar: "a.png"}},
		{Username: "guest", Password: "guest"},
	}}
	tests := []struct {
		cred    Credentials
		want    UserProfile
		wantErr error
	}{
		{Credentials{"admin", "1234"}, UserProfile{Name: "Administrator", Avatar: "a.png"}, nil},
		{Credentials{"guest", "guest"}, UserProfile{Name: "guest"}, nil},
		{Credentials{"admin", "wrong"}, UserProfile{}, ErrBadCredentials},
		{Credentials{"nobody", "1234"}, UserProfile{}, ErrBadCredentials},
	}
	for _, test := range tests {
		got, err := s.Login(context.Background(), test.cred)
		if !errors.Is(err, test.wantErr) {
			t.Errorf("Login(%v) err = %v, want %v", test.cred, err, test.wantErr)
		}
		if diff := cmp.Diff(test.want, got); diff != "" {
			t.Errorf("Login(%v) profile (-want +got):\n%s", test.cred, diff)
		}
	}
}

func TestStub_HonoursCancellation(t *testing.T) {
	s := &Stub{Delay: time.Hour}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := s.Login(ctx, Credentials{"admin", "1234"})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Login err = %v, want context.DeadlineExceeded", err)
	}
}

type clientFunc func(context.Context, Credentials) (UserProfile, error)

func (f clientFunc) Login(ctx context.Context, c Credentials) (UserProfile, error) {
	return f(ctx, c)
}

func TestSubmitter_MapsFields(t *testing.T) {
	var got Credentials
	sub := Submitter(clientFunc(func(_ context.Context, c Credentials) (UserProfile, error) {
		got = c
		return UserProfile{Name: c.Username}, nil
	}))
	fields := Fields()
	fields[0].Value = " admin "
	fields[1].Value = "1234"

	p, err := sub.Submit(context.Background(), fields)
	if err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if diff := cmp.Diff(Credentials{"admin", "1234"}, got); diff != "" {
		t.Errorf("credentials (-want +got):\n%s", diff)
	}
	if p.Name != "admin" {
		t.Errorf("profile name = %q, want admin", p.Name)
	}
}

func TestSubmitter_MissingUsername(t *testing.T) {
	sub := Submitter(&Stub{})
	if _, err := sub.Submit(context.Background(), []mvi.Field{{Name: FieldPassword, Value: "x"}}); err == nil {
		t.Error("Submit without username succeeded")
	}
}

func TestLoginThroughContainer(t *testing.T) {
	c := mvi.New(Fields(), Submitter(&Stub{Accounts: []Account{{Username: "admin", Password: "1234"}}}))
	defer c.Close()

	states := make(chan mvi.State[UserProfile], 16)
	c.Subscribe(func(s mvi.State[UserProfile]) { states <- s })
	c.Dispatch(mvi.FieldChanged{Name: FieldUsername, Value: "admin"})
	c.Dispatch(mvi.FieldChanged{Name: FieldPassword, Value: "nope"})
	c.Dispatch(mvi.Submit{})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-states:
			if s.Loading || s.Err == nil {
				continue
			}
			if !errors.Is(s.Err, ErrBadCredentials) {
				t.Fatalf("state error = %v, want ErrBadCredentials", s.Err)
			}
			if s.ErrorMessage() != "bad credentials" {
				t.Errorf("message = %q", s.ErrorMessage())
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for failure state")
		}
	}
}
