package constants

import "time"

// DateFormat is the layout of every stored calendar day key.
const DateFormat = time.DateOnly

// DefaultTimezone defers to the system zone.
const DefaultTimezone = "Local"
