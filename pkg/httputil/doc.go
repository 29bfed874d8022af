// Package httputil provides HTTP helpers for network organization sources.
//
// # Retry
//
// [Retry] runs an operation with exponential backoff. Only failures wrapped
// with [Retryable] are retried, so callers decide what is transient:
//
//   - network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Usage:
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    resp, err := client.Do(req)
//	    if err != nil {
//	        return httputil.Retryable(err)
//	    }
//	    if httputil.IsTransientStatus(resp.StatusCode) {
//	        return httputil.Retryable(fmt.Errorf("status %d", resp.StatusCode))
//	    }
//	    ...
//	})
//
// # Configuration
//
// [RetryWithBackoff] uses 3 attempts with a 1 second initial delay. Use
// [Retry] to choose other values.
package httputil
