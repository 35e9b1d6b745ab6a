package credentials

// Account is the identity the game is launched with
type Account struct {
	PlayerName  string `json:"username"`
	AccessToken string `json:"token,omitempty"`
	UUID        string `json:"uuid,omitempty"`
	// UserType is "msa" for microsoft accounts, empty means "legacy"
	UserType string `json:"user_type,omitempty"`
	XUID     string `json:"xuid,omitempty"`
}

// Offline returns a local account without token. The game gets a uuid derived from the name
func Offline(playerName string) *Account {
	return &Account{PlayerName: playerName}
}

// IsOffline returns true if there is no access token
func (a *Account) IsOffline() bool { return a.AccessToken == "" }

// GetAccessToken returns the access token
func (a *Account) GetAccessToken() string { return a.AccessToken }

// GetUUID returns the uuid of the player
func (a *Account) GetUUID() string { return a.UUID }

// GetPlayerName returns the player name
func (a *Account) GetPlayerName() string { return a.PlayerName }

// GetUserType returns the user type
func (a *Account) GetUserType() string { return a.UserType }

// GetXUID returns the xbox user id
func (a *Account) GetXUID() string { return a.XUID }
