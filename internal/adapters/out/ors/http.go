package ors

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"dispatch/internal/metrics"

	"github.com/cenkalti/backoff/v4"
)

type httpStatusError struct {
	Code int
	Body string
}

func (e *httpStatusError) Error() string {
	return fmt.Sprintf("code %d: %s", e.Code, e.Body)
}

func (o *Optimizer) newRequest(ctx context.Context, url string, payload []byte) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", o.apiKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	return req, nil
}

// attempt performs one rate-limited call bounded by the per-attempt timeout
// and returns the response body.
func (o *Optimizer) attempt(ctx context.Context, url string, payload []byte) ([]byte, error) {
	if err := o.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	attemptCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	req, err := o.newRequest(attemptCtx, url, payload)
	if err != nil {
		return nil, err
	}

	resp, err := o.session.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &httpStatusError{
			Code: resp.StatusCode,
			Body: strings.TrimSpace(string(body)),
		}
	}
	return body, nil
}

// postWithRetry retries network errors, 429 and 5xx responses with
// exponential backoff. Other failures are returned after the first attempt.
func (o *Optimizer) postWithRetry(ctx context.Context, url string, payload []byte) ([]byte, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = o.initialDelay
	policy.MaxInterval = o.maxDelay
	policy.MaxElapsedTime = 0

	var body []byte
	operation := func() error {
		b, err := o.attempt(ctx, url, payload)
		if err == nil {
			metrics.OptimizationRequests.WithLabelValues("ok").Inc()
			body = b
			return nil
		}

		if ctx.Err() != nil || !isTransient(err) {
			metrics.OptimizationRequests.WithLabelValues("error").Inc()
			return backoff.Permanent(err)
		}

		metrics.OptimizationRequests.WithLabelValues("retry").Inc()
		return err
	}

	err := backoff.Retry(operation, backoff.WithContext(
		backoff.WithMaxRetries(policy, uint64(o.maxRetries)), ctx,
	))
	if err != nil {
		return nil, err
	}
	return body, nil
}

func isTransient(err error) bool {
	var he *httpStatusError
	if errors.As(err, &he) {
		return he.Code == http.StatusTooManyRequests || he.Code >= 500
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
