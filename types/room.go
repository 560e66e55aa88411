package types

// SupportRoom is a conversation space the bot may suggest to the user.
// Identity is the room name.
type SupportRoom struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// RoomCatalogue mirrors the salas_de_apoio.json file layout.
type RoomCatalogue struct {
	SalasDeApoio []SupportRoom `json:"salasDeApoio"`
}
