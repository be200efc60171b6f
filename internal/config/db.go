package config

// DB holds the settings for the database keeping the identity graph.
type DB struct {
	Extras     string
	Host       string
	Port       int
	User       string
	Password   string
	Name       string

	// GormEngine selects the driver: mysql, postgres or sqlite.
	GormEngine string
}
