package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID genera el ID corto de una corrida de análisis.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 8)
}
