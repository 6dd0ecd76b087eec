package resolver

import (
	"context"
	"fmt"
	"time"

	"github.com/miekg/dns"

	"github.com/wangyifan349/resolvboot/internal/log"
)

const stubQueryTimeout = 3 * time.Second

// Querier resolves a domain once, as a smoke test.
type Querier interface {
	Query(domain string) error
}

// StubQuerier sends a plain UDP DNS query to the local stub listener.
type StubQuerier struct {
	address string
	client  *dns.Client
}

// NewStubQuerier creates a querier against the systemd-resolved stub listener.
func NewStubQuerier() *StubQuerier {
	return &StubQuerier{
		address: StubListenAddr,
		client: &dns.Client{
			Net:     "udp",
			Timeout: stubQueryTimeout,
		},
	}
}

// Query sends one A query for domain and checks that an answer comes back.
func (q *StubQuerier) Query(domain string) error {
	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(domain), dns.TypeA)

	ctx, cancel := context.WithTimeout(context.Background(), stubQueryTimeout)
	defer cancel()

	resp, _, err := q.client.ExchangeContext(ctx, msg, q.address)
	if err != nil {
		return fmt.Errorf("query %s via %s: %w", domain, q.address, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return fmt.Errorf("query %s via %s: %s", domain, q.address, dns.RcodeToString[resp.Rcode])
	}

	log.Debugf("Resolved %s: %d answer(s)", domain, len(resp.Answer))
	return nil
}
