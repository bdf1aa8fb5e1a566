package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"

	"github.com/AgnopraxLab/modvar/config"
	"github.com/AgnopraxLab/modvar/flags"
	"github.com/AgnopraxLab/modvar/generator"
	"github.com/AgnopraxLab/modvar/utils"
)

// packet-generator --type ping --count 2 --seed 7 --file ./packets.txt --config ./modvar.yaml

var (
	app = initApp()
)

func initApp() *cli.App {
	app := cli.NewApp()
	app.Name = filepath.Base(os.Args[0])
	app.Usage = "Generate signed discovery packets with mutated field values"
	app.Flags = append(app.Flags,
		flags.TypeFlag,
		flags.CountFlag,
		flags.SeedFlag,
		flags.FileFlag,
		flags.LocationFlag,
		flags.ConfigFlag,
		flags.VerbosityFlag,
		flags.PrintFlag,
	)
	app.Action = generate
	return app
}

func main() {
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, if any, and applies command line overrides.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	cfg := config.Default()
	if path := ctx.String(flags.ConfigFlag.Name); path != "" {
		var err error
		if cfg, err = config.LoadConfig(path); err != nil {
			return nil, err
		}
	}
	if ctx.IsSet(flags.SeedFlag.Name) {
		cfg.Mutation.Seed = ctx.Int64(flags.SeedFlag.Name)
	}
	if ctx.IsSet(flags.FileFlag.Name) {
		cfg.Output.File = ctx.String(flags.FileFlag.Name)
	}
	if ctx.IsSet(flags.LocationFlag.Name) {
		cfg.Output.Directory = ctx.String(flags.LocationFlag.Name)
	}
	if ctx.IsSet(flags.VerbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.Int(flags.VerbosityFlag.Name)
	}
	return cfg, cfg.Validate()
}

func generate(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}
	loglevel := log.FromLegacyLevel(cfg.Log.Verbosity)
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(os.Stderr, loglevel, true)))

	runlog, err := utils.NewLogger(cfg.Log.Directory, cfg.Log.Verbosity)
	if err != nil {
		return err
	}
	defer runlog.Close()

	key, err := cfg.PrivateKey()
	if err != nil {
		return err
	}
	typ := ctx.String(flags.TypeFlag.Name)
	count := ctx.Int(flags.CountFlag.Name)
	runlog.Info("Generating %d %s packets (seed %d, %d planned mutations)", count, typ, cfg.Mutation.Seed, len(cfg.Plan.Mutations))

	res, err := generator.Generate(generator.Options{
		Type:   typ,
		Count:  count,
		Key:    key,
		Config: &cfg.Mutation,
		Plan:   &cfg.Plan,
	})
	if err != nil {
		runlog.Error("Generation failed: %v", err)
		return err
	}

	if err := utils.EnsureDir(cfg.Output.Directory); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	out := cfg.GetOutputPath()
	header := fmt.Sprintf("%s count=%d seed=%d", typ, count, cfg.Mutation.Seed)
	if err := utils.WritePacketsToFile(out, header, res.Packets); err != nil {
		return err
	}

	fingerprint := hexutil.Encode(res.Fingerprint)
	log.Info("Wrote packets", "file", out, "count", len(res.Packets), "fingerprint", fingerprint)
	runlog.Info("Wrote %d packets to %s, fingerprint %s", len(res.Packets), out, fingerprint)

	if ctx.Bool(flags.PrintFlag.Name) {
		cfg.PrintConfig()
		for i, packet := range res.Packets {
			utils.PrintPacket(os.Stdout, i, packet)
			utils.PrintVariables(res.Messages[i])
		}
		utils.PrintSummary(os.Stdout, "Generation", res.Stats)
	}
	return nil
}
