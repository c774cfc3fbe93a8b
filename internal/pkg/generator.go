package pkg

import (
	"crypto/rand"
	"crypto/sha1" //nolint: gosec // required by the WebSocket handshake
	"encoding/base64"
	"encoding/hex"
)

const webSocketGUID = "258EAFA5-E914-47DA-95CA-C5AB0DC85B11"

// GenerateSessionID - returns a random identifier for a game session.
func GenerateSessionID() string {
	return randomHex(8)
}

// GeneratePlayerID - returns a random identifier for a player.
func GeneratePlayerID() string {
	return randomHex(16)
}

// GenerateAcceptKey - computes the Sec-WebSocket-Accept value for a handshake key.
func GenerateAcceptKey(key string) string {
	hash := sha1.Sum([]byte(key + webSocketGUID)) //nolint: gosec // required by the WebSocket handshake
	return base64.StdEncoding.EncodeToString(hash[:])
}

func randomHex(n int) string {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}

	return hex.EncodeToString(buf)
}
