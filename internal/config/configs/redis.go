package configs

// Redis holds connection parameters for the creative index. Addr is a
// host:port pair accepted by the rueidis client.
type Redis struct {
	// Addr is the Redis server address.
	Addr string `env:"ADDRESS" envDefault:"localhost:6379"`
	// Username and Password authenticate the connection when set.
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	// DB selects the logical database.
	DB int `env:"DB" envDefault:"0"`
	// SeedDemo populates the index with demo creatives on startup. Only
	// honoured by main.
	SeedDemo bool `env:"SEED_DEMO" envDefault:"false"`
}
