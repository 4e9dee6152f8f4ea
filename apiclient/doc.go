// Package apiclient provides the typed request pipeline shared by every
// backend API module (auth, preferences, routes).
//
// One Client is built at startup and passed to the domain modules. Each call
// merges default and per-call headers, injects a bearer token from the
// registered TokenProvider, sends the request through a Doer, decodes the
// body by content type, and optionally validates it against a schema.Schema.
// Every failure is returned as exactly one *errors.APIError.
//
// # Basic Usage
//
//	client, err := apiclient.New(apiclient.Config{BaseURL: "https://api.example.com"})
//	client.SetTokenProvider(store.Token)
//
//	prefs, err := apiclient.Get(ctx, client, "/preferences", schema.Struct[Preferences]())
//
// # Error Normalization
//
// Non-2xx responses are reduced to a user-presentable message taken from
// the body's "detail" (string, or list of {"msg": ...} entries joined with
// ", "), then "message", then a per-status default. MessageRules can swap
// specific backend wording for friendlier text.
package apiclient
