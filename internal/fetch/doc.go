// Package fetch downloads puzzle images over plain HTTP.
//
// Downloads are strictly sequential: each URL is fetched and written to disk
// before the next one starts. A failed URL never aborts the batch; it is
// recorded as a model.FetchResult with a failure kind and the batch moves on,
// which leaves a gap in the numbered file sequence.
//
// Failure kinds:
//   - transport: no response was received (DNS, connection refused, timeout)
//   - status: a response was received but its status was not 2xx
//   - write: the body could not be written to the destination file
//
// The HTTP client can optionally be routed through a SOCKS5 proxy.
package fetch
