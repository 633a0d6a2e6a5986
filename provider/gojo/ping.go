package gojo

import (
	"context"
	"fmt"
	"net/http"

	"github.com/soramod/soramod/fanout"
	"github.com/soramod/soramod/source"
	"github.com/soramod/soramod/util"
)

// Ping sends HEAD to every required host and fails on the first one, in
// order, that is unreachable or does not answer 200.
func (m *Module) Ping(ctx context.Context) error {
	attempts := make([]fanout.Attempt[struct{}], len(m.hosts))
	for i, host := range m.hosts {
		attempts[i] = fanout.Attempt[struct{}]{
			Name: host,
			Run: func(ctx context.Context) (struct{}, error) {
				return struct{}{}, m.head(ctx, host)
			},
		}
	}

	for _, outcome := range fanout.Settle(ctx, attempts, fanout.WithTimeout(m.timeout)) {
		if outcome.Err != nil {
			return outcome.Err
		}
	}

	return nil
}

func (m *Module) head(ctx context.Context, host string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, host, nil)
	if err != nil {
		return &source.UpstreamError{URL: host, Err: err}
	}

	resp, err := m.http.Do(req)
	if err != nil {
		return &source.UpstreamError{URL: host, Err: fmt.Errorf("required source %s is currently down: %w", host, err)}
	}

	util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return &source.UpstreamError{URL: host, Status: resp.StatusCode}
	}

	return nil
}
