package validators

import (
	"context"
	"errors"
	"net"
	"testing"

	"github.com/go-playground/validator/v10"
)

type fakeResolver struct {
	mx    map[string]bool
	hosts map[string]bool
	calls int
}

func (f *fakeResolver) LookupMX(_ context.Context, name string) ([]*net.MX, error) {
	f.calls++
	if f.mx[name] {
		return []*net.MX{{Host: "mx." + name, Pref: 10}}, nil
	}
	return nil, errors.New("no such host")
}

func (f *fakeResolver) LookupIPAddr(_ context.Context, host string) ([]net.IPAddr, error) {
	f.calls++
	if f.hosts[host] {
		return []net.IPAddr{{IP: net.ParseIP("192.0.2.1")}}, nil
	}
	return nil, errors.New("no such host")
}

func TestEmailDomainCheck(t *testing.T) {
	r := &fakeResolver{
		mx:    map[string]bool{"mail.example": true},
		hosts: map[string]bool{"web.example": true},
	}
	ed := NewEmailDomain(r)
	ctx := context.Background()

	cases := map[string]bool{
		"a@mail.example": true,
		"a@WEB.example.": true,
		"a@gone.example": false,
		"a@localhost":    false,
		"a@":             false,
		"no-at-sign":     false,
		"a@double..dot":  false,
	}
	for email, want := range cases {
		if got := ed.Check(ctx, email); got != want {
			t.Fatalf("%q: expected %v, got %v", email, want, got)
		}
	}
}

func TestEmailDomainSkipsLookupForBadShape(t *testing.T) {
	r := &fakeResolver{}
	if NewEmailDomain(r).Check(context.Background(), "a@localhost") {
		t.Fatal("single label domain must fail")
	}
	if r.calls != 0 {
		t.Fatalf("expected no DNS lookups, got %d", r.calls)
	}
}

func TestEmailDomainRule(t *testing.T) {
	type signup struct {
		Email string `validate:"required,emaildomain"`
	}

	v := validator.New()
	if err := RegisterOn(v, &fakeResolver{mx: map[string]bool{"mail.example": true}}); err != nil {
		t.Fatalf("RegisterOn: %v", err)
	}

	if err := v.Struct(signup{Email: "coach@mail.example"}); err != nil {
		t.Fatalf("known domain: %v", err)
	}

	err := v.Struct(signup{Email: "coach@unknown.example"})
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || verrs[0].Tag() != "emaildomain" {
		t.Fatalf("expected emaildomain failure, got %v", err)
	}

	// without a resolver only the shape counts
	offline := validator.New()
	if err := RegisterOn(offline, nil); err != nil {
		t.Fatalf("RegisterOn: %v", err)
	}
	if err := offline.Struct(signup{Email: "coach@unknown.example"}); err != nil {
		t.Fatalf("offline check: %v", err)
	}
}
