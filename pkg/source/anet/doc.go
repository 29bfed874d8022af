// Package anet fetches organization trees from the ANET GraphQL API.
//
// A single query returns the requested organization with its positions and
// every descendant organization (flattened, each with its parent and
// ascendant references):
//
//	client, err := anet.NewClient("https://anet.example.org", anet.WithToken(token))
//	tree, err := client.Fetch(ctx, "7e1f6f1c-2f0d-4a3b-9d8e-1c2b3a4d5e6f")
//
// Network errors and transient HTTP statuses are retried with exponential
// backoff (see pkg/httputil). Every request is reported through the
// observability HTTP hooks.
package anet
