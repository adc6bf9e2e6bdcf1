package testutil

// Fixture values shared by package tests.
const (
	FixtureUIN  = "123456"
	FixtureNick = "Alice"

	// FixtureTime is 2009-02-13 23:31:30 UTC.
	FixtureTime uint32 = 1234567890
)
