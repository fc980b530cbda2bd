package lume

// Version and BuildDate are stamped by the release build; the defaults
// identify development builds.
var (
	Version   = "0.1.0-dev"
	BuildDate = "unknown"
)
