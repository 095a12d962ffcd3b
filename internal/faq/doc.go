// Package faq loads, normalizes, and filters knowledge-base articles.
//
// Articles come from the backend when it has any. An error or an empty list
// silently switches to the articles bundled with the client, so the browser
// always has something to show.
//
// Normalize turns the backend's loosely-shaped records into Article values
// with an id, a title, a description, and content, filling gaps from
// per-category templates.
package faq
