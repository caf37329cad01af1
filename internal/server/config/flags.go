package config

import (
	"flag"

	"github.com/dmitrijs2005/contactkeeper/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-a string   HTTP bind address (e.g. ":8000")
//	-d string   PostgreSQL DSN
//	-k int      bcrypt cost
//	-m bool     run migrations at startup
//	-l string   log level
//
// Only the flags above are looked at, so -c/-config and foreign flags do not
// make parsing fail.
func parseFlags(config *Config, args []string) {
	filtered := flagx.FilterArgs(args, []string{"-a", "-d", "-k", "-m", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrHTTP, "a", config.EndpointAddrHTTP, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.IntVar(&config.BcryptCost, "k", config.BcryptCost, "bcrypt cost")
	fs.BoolVar(&config.RunMigrations, "m", config.RunMigrations, "run migrations at startup")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}
}
