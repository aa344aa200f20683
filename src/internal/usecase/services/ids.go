package services

import (
	"time"

	"github.com/google/uuid"
)

func newRecordID() string {
	return uuid.NewString()
}

func utcNow() time.Time {
	return time.Now().UTC()
}
