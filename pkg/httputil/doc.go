// Package httputil provides the HTTP plumbing shared by the graph client.
//
// # Retry
//
// [Retry] re-runs an operation with exponential backoff, but only when the
// error is wrapped in [RetryableError]. Everything else fails fast:
//
//	err := httputil.Retry(ctx, 3, 200*time.Millisecond, func() error {
//	    resp, err := http.DefaultClient.Do(req)
//	    if err != nil {
//	        return &httputil.RetryableError{Err: err}
//	    }
//	    defer resp.Body.Close()
//	    return httputil.CheckStatus(resp)
//	})
//
// # Status classification
//
// [CheckStatus] turns a non-2xx response into an error. 5xx and 429 answers
// come back as [RetryableError]; 4xx answers do not, since repeating the
// same request against a running graph server will not change them.
package httputil
