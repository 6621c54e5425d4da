// Package server provides HTTP routing, middleware, OAuth callback handling,
// and the playlist API endpoints.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow.
//
// The handler validates the state parameter (CSRF protection), exchanges the authorization code for tokens,
// and sends the result through a channel. It only processes one callback to prevent replay attacks.
//
// It backs the CLI auth flow: the auth command starts a temporary server on the
// redirect URI's address, handles the callback, and shuts down after receiving
// the token.
//
// # Playlist API
//
// [PlaylistHandler] serves the JSON API:
//
//	POST /api/playlist/generate → vibe in, parsed playlist out (always 200;
//	                              degrades silently to the fallback catalog)
//	POST /api/playlist/assemble → access token + playlist data in, assembly
//	                              report out (JSON error bodies with a
//	                              machine-readable code on 400/401/500)
//	GET  /health                → liveness probe
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
