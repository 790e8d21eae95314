package main

import (
	"context"
	"fmt"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/acrobot/pkg/bot"
	"github.com/tzrikka/acrobot/pkg/http"
	"github.com/tzrikka/acrobot/pkg/store"
	"github.com/tzrikka/xdg"
)

const (
	ConfigDirName  = "acrobot"
	ConfigFileName = "config.toml"
)

func main() {
	// Optional, for local development (Slack tokens, etc.).
	_ = godotenv.Load()

	buildInfo, _ := debug.ReadBuildInfo()
	configFilePath := configFile()

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "dev",
			Usage: "simple setup, but unsafe for production",
		},
	}
	flags = append(flags, http.Flags(configFilePath)...)
	flags = append(flags, bot.Flags(configFilePath)...)
	flags = append(flags, store.Flags(configFilePath)...)

	cmd := &cli.Command{
		Name:    "acrobot",
		Usage:   "Look up, add, and delete acronym definitions with a Slack slash command",
		Version: buildInfo.Main.Version,
		Flags:   flags,
		Action:  http.Start,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// configFile returns the path to the app's configuration file.
// It also creates an empty file if it doesn't already exist.
func configFile() altsrc.StringSourcer {
	path, err := xdg.CreateFile(xdg.ConfigHome, ConfigDirName, ConfigFileName)
	if err != nil {
		log.Fatal().Err(err).Caller().Send()
	}
	return altsrc.StringSourcer(path)
}
