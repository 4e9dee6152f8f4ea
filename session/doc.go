// Package session holds the bearer token used by the API client.
//
// A Store satisfies apiclient.TokenProvider through its Token method:
//
//	store := session.NewStore()
//	client.SetTokenProvider(store.Token)
//
// Tokens that parse as JWTs are checked against their "exp" claim and are
// dropped once expired. Opaque tokens are held until cleared. Signatures are
// never verified; the backend remains the authority.
package session
