package server

type HttpConfig struct {
	// Enabled toggles the control server
	Enabled bool `conf:"enabled"`

	Host string `conf:"host"`
	Port int    `conf:"port"`
	H2c  bool   `conf:"h2c"`
}
