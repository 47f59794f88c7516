package config

const (
	DefaultDatabasePath = "./shelflife.db"
	DefaultBcryptCost   = 10
)
