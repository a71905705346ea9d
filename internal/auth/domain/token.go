package domain

// TokenPair is the signed pair minted at login, sign-up and refresh. Both
// tokens are self-contained JWTs, the service keeps no record of them.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}
