package config

import (
	"flag"
	"os"

	"github.com/stujob/stujob/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   base URL of the backend server (default from Config)
//	-f string   path of the local profile database
//	-u bool     allow login with an unconfirmed email
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-f", "-u"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerBaseURL, "a", cfg.ServerBaseURL, "base URL of the backend server")
	fs.StringVar(&cfg.DatabaseDSN, "f", cfg.DatabaseDSN, "path of the local profile database")
	fs.BoolVar(&cfg.AllowUnconfirmedEmailLogin, "u", cfg.AllowUnconfirmedEmailLogin, "allow login with an unconfirmed email")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
