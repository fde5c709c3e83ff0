package server

type Config struct {
	// Port is a server port to listen to
	Port int `toml:"port"`
	// Bind a specific IP addresses for server
	// "*": bind all IP addresses which is default option
	// localhost or 127.0.0.1  bind a single IPv4 address
	BindAddress string `toml:"bind_address"`
	// CORSOrigins is a list of allowed origins, all origins are allowed when empty
	CORSOrigins []string `toml:"cors_origins"`
}
