package authsdk

import (
	"regexp"
	"unicode/utf8"
)

// Shared validation reasons so tests and API consumers see stable strings.
const (
	requiredReason       = "required"
	emailFormatReason    = "must be a valid email address"
	passwordLengthReason = "must be between 6 and 72 characters"
	usernameLengthReason = "must be between 2 and 50 characters"
)

// Deliberately loose. The mail server is the real validator; this only
// catches obvious typos before they cost a round trip.
var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// Password bounds are bytes, not runes. bcrypt ignores everything past 72
// bytes, so longer inputs would silently weaken to a prefix match.
const (
	passwordMinLen = 6
	passwordMaxLen = 72
)

const (
	usernameMinLen = 2
	usernameMaxLen = 50
)

// Validate returns a map of field name to reason for every invalid field.
// An empty map means the request is well formed.
func (r LoginRequest) Validate() map[string]string {
	problems := make(map[string]string)
	validateEmail(problems, r.Email)
	validatePassword(problems, r.Password)
	return problems
}

// Validate returns a map of field name to reason for every invalid field.
// An empty map means the request is well formed.
func (r SignUpRequest) Validate() map[string]string {
	problems := make(map[string]string)
	validateEmail(problems, r.Email)
	validatePassword(problems, r.Password)
	validateUsername(problems, r.Username)
	return problems
}

// Validate returns a map of field name to reason for every invalid field.
// An empty map means the request is well formed.
func (r RefreshRequest) Validate() map[string]string {
	problems := make(map[string]string)
	if r.RefreshToken == "" {
		problems["refresh_token"] = requiredReason
	}
	return problems
}

func validateEmail(problems map[string]string, email string) {
	if email == "" {
		problems["email"] = requiredReason
		return
	}
	if !emailRe.MatchString(email) {
		problems["email"] = emailFormatReason
	}
}

func validatePassword(problems map[string]string, password string) {
	if password == "" {
		problems["password"] = requiredReason
		return
	}
	if len(password) < passwordMinLen || len(password) > passwordMaxLen {
		problems["password"] = passwordLengthReason
	}
}

func validateUsername(problems map[string]string, username string) {
	if username == "" {
		problems["username"] = requiredReason
		return
	}
	if n := utf8.RuneCountInString(username); n < usernameMinLen || n > usernameMaxLen {
		problems["username"] = usernameLengthReason
	}
}
