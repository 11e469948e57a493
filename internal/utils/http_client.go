// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient is a wrapper around the resty.Client HTTP client.
// It embeds *resty.Client to expose all of its methods directly.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient creates an independent client with its own connection pool.
//
// Idempotent requests failing on connection errors or 5xx responses are
// retried retries times with a short back-off.
//
// Example usage:
//
//	client := utils.NewHTTPClient(2)
//	resp, err := client.R().Get("http://127.0.0.1:8080/api/health")
func NewHTTPClient(retries int) *HTTPClient {
	client := resty.New().
		SetRetryCount(retries).
		SetRetryWaitTime(100 * time.Millisecond).
		SetRetryMaxWaitTime(time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= 500
		})

	return &HTTPClient{Client: client}
}
