// Package gauth implements the client side of the GAuth authorization
// code flow: exchanging credentials or a captured code for tokens,
// refreshing tokens, and fetching the authenticated user's profile.
//
// # Architecture
//
// The package is layered, leaves first:
//
//   - The endpoint catalog describes the four fixed server operations as
//     a closed set of request variants (method, path, body shape, auth
//     header).
//   - Classify maps an operation plus response status to a domain error
//     kind; every failure surfaces as an *Error value.
//   - Transport issues exactly one HTTP request per operation and decodes
//     the expected success shape. A successful decode wins regardless of
//     status; a failed decode classifies by status.
//   - Client is the facade. Each operation is available as a direct call,
//     a cold single-value stream, or a one-shot callback delivered on a
//     Dispatcher. The three conventions are derived from the same
//     primitive and resolve to equivalent results.
//
// The provider is fixed: three wire endpoints on server.gauth.co.kr plus
// the hosted login page. Nothing here is pluggable, cached or retried.
//
// # Usage
//
//	client, err := gauth.NewClient(gauth.Config{
//	    ClientID:     "my-service",
//	    ClientSecret: "…",
//	    RedirectURI:  "https://my-service.example/callback",
//	})
//	if err != nil {
//	    return err
//	}
//
//	pair, err := client.ExchangeCode(ctx, capturedCode)
//	if err != nil {
//	    return err
//	}
//
//	profile, err := client.UserInfo(ctx, pair.AccessToken)
//
// Capturing the authorization code from the hosted login page is the job
// of the capture subpackage.
package gauth
