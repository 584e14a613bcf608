package models

type JoinDto struct {
	Game_id string `json:"game_id"`
	Name    string `json:"name"`
}

// Participant is the identity carried by a participant token.
type Participant struct {
	User_id string `json:"user_id"`
	Game_id string `json:"game_id"`
	Name    string `json:"name"`
}
