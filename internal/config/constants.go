package config

// Default paths for data files
const (
	// DefaultDatabasePath is the default path for the songbook database
	DefaultDatabasePath = "./songbook.db"

	// DefaultDataCSVPath is the default path of the songbook index export
	DefaultDataCSVPath = "./dev/data.csv"

	// DefaultReloadSchedule reloads the index hourly at :00
	DefaultReloadSchedule = "0 * * * *"
)
