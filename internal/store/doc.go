// Package store persists the client's local state.
//
// # Overview
//
// The web client kept two values in browser local storage: the session
// token and the chatbot transcript. This package plays the same role for the
// terminal client. Each value lives under a fixed well-known key and every
// write replaces the whole value, so no transactions are needed.
//
// # Keys
//
//   - KeyToken: the bearer token returned by login or register
//   - KeyChatHistory: the JSON-encoded chat transcript
//
// # Implementations
//
//   - SQLiteStore: a single key/value table backed by modernc.org/sqlite
//   - MockStore: an in-memory Store for tests
//
// # Usage
//
//	s, err := store.NewSQLiteStore(path)
//	if err != nil {
//		return err
//	}
//	defer s.Close()
//
//	if err := s.Set(ctx, store.KeyToken, token); err != nil {
//		return err
//	}
package store
