package authsdk

// LoginRequest is the body for POST /api/v1/auth/email/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignUpRequest is the body for POST /api/v1/auth/email/sign-up.
type SignUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username"`
}

// LoginResponse is returned by both the login and sign-up endpoints. A
// successful sign-up signs the user straight in, so the shapes are identical.
type LoginResponse struct {
	UserID       string `json:"user_id"`
	AppAuthToken string `json:"app_auth_token"`
	RefreshToken string `json:"refresh_token"`
	Nickname     string `json:"nickname"`
}

// RefreshRequest is the body for POST /api/v1/auth/refresh.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// RefreshResponse carries the replacement token pair. The previous refresh
// token is not revoked server-side; callers should still discard it.
type RefreshResponse struct {
	AppAuthToken string `json:"app_auth_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserInfoResponse is returned by GET /api/v1/auth/me.
type UserInfoResponse struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Email     string `json:"email"`
	AuthType  string `json:"auth_type"`
	IsAdmin   bool   `json:"is_admin"`
	IsPremium bool   `json:"is_premium"`
}

// SessionCookieRequest is the body for POST /api/auth/session on the web
// gateway. Field names are camelCase because the gateway's primary consumer
// is browser-side JavaScript.
type SessionCookieRequest struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// ErrorResponse is the standard error envelope returned by every endpoint.
type ErrorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description,omitempty"`
}

// ValidationErrorResponse is returned when request validation fails. Details
// maps field names to human-readable reasons.
type ValidationErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// HealthResponse is returned by the health endpoints. Checks is only present
// on readiness responses; liveness says nothing about dependencies.
type HealthResponse struct {
	Status  string        `json:"status"`
	Uptime  string        `json:"uptime"`
	Version string        `json:"version"`
	Checks  *HealthChecks `json:"checks,omitempty"`
}

// HealthChecks reports the status of each dependency probed by readyz.
type HealthChecks struct {
	Database string `json:"database"`
}
