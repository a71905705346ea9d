// Package authsdk is the client library for the Duet auth service. It is
// used by the service's own handlers for request and response types, by the
// web gateway for cookie bridging, and by native apps and CLIs for the full
// session lifecycle.
//
// # Client
//
// Client is the low-level surface: one method per endpoint, explicit
// credentials, no stored state.
//
//	client := authsdk.NewClient("https://auth.duet.example")
//
//	out, err := client.LoginEmail(ctx, authsdk.LoginRequest{
//		Email:    "robin@example.com",
//		Password: "hunter22",
//	})
//	if err != nil {
//		var apiErr *authsdk.APIError
//		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
//			// wrong email or password
//		}
//		return err
//	}
//	profile, err := client.Me(ctx, out.AppAuthToken)
//
// Endpoint errors decode into *APIError; anything else (DNS, timeouts,
// unparseable bodies) surfaces as an ordinary wrapped error.
//
// # Session
//
// Session layers token storage and automatic refresh over a Client. Do
// attaches the stored access token and, when the server answers 401,
// exchanges the refresh token for a new pair and retries exactly once.
// Concurrent 401s share a single refresh.
//
//	store := authsdk.NewMemoryStore()
//	session := authsdk.NewSession(client, store)
//
//	if _, err := session.LoginEmail(ctx, req); err != nil {
//		return err
//	}
//	profile, err := session.Me(ctx) // refreshes behind the scenes when needed
//
// When the refresh token itself is rejected, the session wipes its stores
// and fails with ErrReauthRequired. Check for it to route the user back to
// the login screen:
//
//	if errors.Is(err, authsdk.ErrReauthRequired) {
//		showLogin()
//	}
//
// # Sharing a session between processes
//
// FileStore persists the pair as a JSON file and watches it with fsnotify,
// so several processes on one machine behave as a single session. A login in
// one process is picked up by the others without polling, and a logout
// anywhere logs out everywhere.
//
//	store, err := authsdk.NewFileStore(filepath.Join(home, ".duet", "tokens.json"))
//	if err != nil {
//		return err
//	}
//	defer store.Close()
//
//	cancel := store.Subscribe(func(t authsdk.Tokens) {
//		if t.Empty() {
//			// logged out elsewhere
//		}
//	})
//	defer cancel()
//
// # Browser cookies
//
// Apps that embed web views can attach a CookieMirror so the Duet web
// gateway keeps HttpOnly cookies in step with the native session. Mirror
// pushes are asynchronous and best effort; the token store stays the source
// of truth.
//
//	session.UseMirror(authsdk.NewCookieMirror("https://web.duet.example"))
package authsdk
