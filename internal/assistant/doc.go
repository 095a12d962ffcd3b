// Package assistant answers chat turns that no guided plan covers.
//
// A Client forwards the conversation to a remote assistant endpoint. When no
// endpoint is configured, when it answers with an error, or when it cannot be
// reached, the Client answers with Fallback, which matches keyword families
// in the last user message against canned troubleshooting steps.
//
// A 404 from the endpoint is remembered for the rest of the session so later
// turns skip the remote call. Reset forgets it.
package assistant
