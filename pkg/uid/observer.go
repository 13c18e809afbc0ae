package uid

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// GenerateObserverID returns a random 128-bit hex id for one websocket observer.
func GenerateObserverID() (string, error) {
	bytes := make([]byte, 16)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate observer ID: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}
