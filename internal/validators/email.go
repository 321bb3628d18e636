package validators

import (
	"context"
	"net"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Resolver is the DNS surface the emaildomain rule needs. *net.Resolver
// implements it.
type Resolver interface {
	LookupMX(ctx context.Context, name string) ([]*net.MX, error)
	LookupIPAddr(ctx context.Context, host string) ([]net.IPAddr, error)
}

const lookupTimeout = 3 * time.Second

// EmailDomain accepts addresses whose domain has an MX record or, failing
// that, resolves to an address. Without a resolver only the shape of the
// domain is checked.
type EmailDomain struct {
	resolver Resolver
	timeout  time.Duration
}

func NewEmailDomain(r Resolver) *EmailDomain {
	return &EmailDomain{resolver: r, timeout: lookupTimeout}
}

// emailHost returns the lower-cased domain of email when it has at least two
// non-empty labels.
func emailHost(email string) (string, bool) {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return "", false
	}

	host := strings.TrimSuffix(strings.ToLower(email[at+1:]), ".")
	labels := strings.Split(host, ".")
	if len(labels) < 2 {
		return "", false
	}
	for _, l := range labels {
		if l == "" {
			return "", false
		}
	}
	return host, true
}

func (e *EmailDomain) Check(ctx context.Context, email string) bool {
	host, ok := emailHost(email)
	if !ok {
		return false
	}
	if e.resolver == nil {
		return true
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	if mx, err := e.resolver.LookupMX(ctx, host); err == nil && len(mx) > 0 {
		return true
	}
	if ips, err := e.resolver.LookupIPAddr(ctx, host); err == nil && len(ips) > 0 {
		return true
	}
	return false
}

// Validate backs the emaildomain tag.
func (e *EmailDomain) Validate(fl validator.FieldLevel) bool {
	return e.Check(context.Background(), fl.Field().String())
}
