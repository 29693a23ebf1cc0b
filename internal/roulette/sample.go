package roulette

import "github.com/nantokaworks/card-roulette/internal/cards"

// sampleRoulettes is the built-in fallback used when the configuration
// resource is unavailable. Never written to storage.
func sampleRoulettes() []rouletteDocument {
	return []rouletteDocument{
		{
			ID:          "sample-basic",
			Name:        "Basic Roulette",
			Description: "Starter roulette with common cards",
			Segments: []segmentDocument{
				{Label: "Pikachu", Value: "pikachu", Weight: 2, Color: "#FFD700", Card: &cards.Template{
					Name: "Pikachu", Type: "electric", Rarity: cards.RarityCommon,
					Description: "The famous electric mouse",
				}},
				{Label: "Charmander", Value: "charmander", Weight: 2, Color: "#FF6B35", Card: &cards.Template{
					Name: "Charmander", Type: "fire", Rarity: cards.RarityCommon,
					Description: "A fire type with a flame on its tail",
				}},
				{Label: "Squirtle", Value: "squirtle", Weight: 2, Color: "#4A90E2", Card: &cards.Template{
					Name: "Squirtle", Type: "water", Rarity: cards.RarityCommon,
					Description: "A water type turtle",
				}},
				{Label: "Bulbasaur", Value: "bulbasaur", Weight: 2, Color: "#7ED321", Card: &cards.Template{
					Name: "Bulbasaur", Type: "grass", Rarity: cards.RarityCommon,
					Description: "A grass type with a bulb on its back",
				}},
				{Label: "Mewtwo", Value: "mewtwo", Weight: 1, Color: "#9013FE", Card: &cards.Template{
					Name: "Mewtwo", Type: "psychic", Rarity: cards.RarityLegendary,
					Description: "A genetically engineered legendary psychic",
				}},
			},
		},
		{
			ID:          "sample-types",
			Name:        "Type Roulette",
			Description: "Grants cards based on elemental types",
			Segments: []segmentDocument{
				{Label: "Fire", Value: "fire", Weight: 3, Color: "#FF6B35", Card: &cards.Template{
					Name: "Fire Type Card", Type: "fire", Rarity: cards.RarityCommon,
					Description: "A card representing the fire type",
				}},
				{Label: "Water", Value: "water", Weight: 3, Color: "#4A90E2", Card: &cards.Template{
					Name: "Water Type Card", Type: "water", Rarity: cards.RarityCommon,
					Description: "A card representing the water type",
				}},
				{Label: "Grass", Value: "grass", Weight: 3, Color: "#7ED321", Card: &cards.Template{
					Name: "Grass Type Card", Type: "grass", Rarity: cards.RarityCommon,
					Description: "A card representing the grass type",
				}},
				{Label: "Electric", Value: "electric", Weight: 2, Color: "#FFD700", Card: &cards.Template{
					Name: "Electric Type Card", Type: "electric", Rarity: cards.RarityUncommon,
					Description: "A card representing the electric type",
				}},
			},
		},
	}
}
