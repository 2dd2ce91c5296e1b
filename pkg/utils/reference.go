package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const referenceLength = 8

// GenerateReference gera o código curto exibido ao cliente para um pedido
func GenerateReference() (string, error) {
	return gonanoid.Generate(characters, referenceLength)
}
