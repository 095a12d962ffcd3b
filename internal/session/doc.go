// Package session holds the signed-in user and their bearer token.
//
// # Overview
//
// The token is persisted under store.KeyToken so it survives between runs.
// On startup, Restore checks a stored token against GET /auth/me and
// silently discards it when the backend rejects it.
//
// # Token sources
//
// Two types satisfy api.TokenSource:
//
//   - StoredToken reads the persisted token on every request, the way the
//     web client read local storage. Use it for the API client that the
//     Manager itself talks through, so Restore can authenticate.
//   - Manager returns the token of the current in-memory session.
//
// # Usage
//
//	client := api.New(baseURL, api.WithTokenSource(session.StoredToken{Store: st}))
//	mgr := session.NewManager(client.Auth, st, logger)
//	mgr.Restore(ctx)
//	if res := mgr.Login(ctx, email, password); !res.Success {
//		fmt.Println(res.Error)
//	}
package session
