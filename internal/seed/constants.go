package seed

import "time"

// Worker configuration constants.
const (
	WorkerChannelMultiplier = 2
)

// Runner configuration constants.
const (
	PercentageMultiplier = 100
	maxResponseBytes     = 8 << 20
	progressInterval     = time.Second
)

const (
	contactsPath = "/api/contacts"
	healthPath   = "/healthz"
)
