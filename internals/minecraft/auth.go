package minecraft

// LaunchAuthData is the identity the game is started with. Offline identities
// only have a player name
type LaunchAuthData interface {
	// GetAccessToken returns the bearer token or ""
	GetAccessToken() string
	// GetUUID returns the player uuid or "" (a uuid is derived from the name then)
	GetUUID() string
	GetPlayerName() string
	// GetUserType returns "msa", "mojang" or "" for legacy
	GetUserType() string
	// GetXUID returns the xbox user id of msa accounts
	GetXUID() string
}
