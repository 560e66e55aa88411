package service

import (
	"encoding/json"
	"log"
	"os"
	"strings"

	"github.com/projeto-bia/bia-be/types"
)

const maxRoomSuggestions = 2

// LoadCatalogue reads the support-room catalogue file. A missing or broken
// file degrades to an empty catalogue instead of failing startup.
func LoadCatalogue(path string) []types.SupportRoom {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Printf("Failed to load support room catalogue: %v", err)
		return nil
	}
	var catalogue types.RoomCatalogue
	if err := json.Unmarshal(data, &catalogue); err != nil {
		log.Printf("Failed to parse support room catalogue: %v", err)
		return nil
	}
	return catalogue.SalasDeApoio
}

// SelectRooms picks up to two rooms whose description category matches the
// topic of the user text. Rooms are visited in catalogue order, which is
// also the only tie-break. When nothing matches, the first two catalogue
// entries are returned so the bot always has something to suggest.
func SelectRooms(input string, catalogue []types.SupportRoom) []types.SupportRoom {
	var suggestions []types.SupportRoom
	inputLower := strings.ToLower(input)
	for _, room := range catalogue {
		descLower := strings.ToLower(room.Description)
		switch {
		case (strings.Contains(descLower, "estudo") || strings.Contains(descLower, "acadêmico")) &&
			(strings.Contains(inputLower, "estudar") || strings.Contains(inputLower, "nota") || strings.Contains(inputLower, "dificuldade")):
			suggestions = append(suggestions, room)
		case (strings.Contains(descLower, "social") || strings.Contains(descLower, "amigos")) &&
			(strings.Contains(inputLower, "sozinho") || strings.Contains(inputLower, "isolado") || strings.Contains(inputLower, "sem amigos")):
			suggestions = append(suggestions, room)
		case strings.Contains(inputLower, "ansiedade") && strings.Contains(descLower, "bem-estar"):
			suggestions = append(suggestions, room)
		}
		if len(suggestions) >= maxRoomSuggestions {
			break
		}
	}
	if len(suggestions) == 0 {
		if len(catalogue) > maxRoomSuggestions {
			return catalogue[:maxRoomSuggestions]
		}
		return catalogue
	}
	return suggestions
}
