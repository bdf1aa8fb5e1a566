package flags

import (
	"github.com/urfave/cli/v2"
)

var (
	SeedFlag = &cli.Int64Flag{
		Name:  "seed",
		Usage: "Seed for the RNG, overrides the config file (0 = RandomSeed)",
		Value: 0,
	}
	TypeFlag = &cli.StringFlag{
		Name:    "type",
		Aliases: []string{"t"},
		Usage:   "Type of packet to generate ('ping' or 'pong')",
		Value:   "ping",
	}
	CountFlag = &cli.IntFlag{
		Name:    "count",
		Aliases: []string{"n"},
		Usage:   "Number of packets that should be generated",
		Value:   1,
	}
	FileFlag = &cli.StringFlag{
		Name:    "file",
		Aliases: []string{"f"},
		Usage:   "File the generated packets are written to, overrides the config file",
	}
	ConfigFlag = &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "YAML configuration file (mutation bounds, plan, output, logging)",
	}
	LocationFlag = &cli.StringFlag{
		Name:  "outdir",
		Usage: "Location to place artefacts, overrides the config file",
	}
	VerbosityFlag = &cli.IntFlag{
		Name:  "verbosity",
		Usage: "sets the verbosity level (0: CRIT, 1: ERROR, 2: WARN, 3: INFO, 4: DEBUG, 5: TRACE)",
		Value: 3,
	}
	PrintFlag = &cli.BoolFlag{
		Name:  "print",
		Usage: "Print the fields and a hex dump of every generated packet",
	}
)
