package uid

import "github.com/google/uuid"

// GenerateGameID returns a random (version 4) UUID string.
func GenerateGameID() string {
	return uuid.NewString()
}
