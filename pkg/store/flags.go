package store

import (
	"fmt"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/xdg"
)

const (
	DefaultBackend      = "sqlite"
	DefaultEtcdEndpoint = "http://localhost:2379"
	DefaultEtcdPrefix   = "/acrobot/acronyms/"

	dataDirName = "acrobot"
	dataDBName  = "acronyms.db"
)

// Flags defines CLI flags to select and configure the bot's storage
// backend. These flags can also be set using environment variables
// and the application's configuration file.
func Flags(configFilePath altsrc.StringSourcer) []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "store-backend",
			Usage: "storage backend: sqlite, etcd, or memory",
			Value: DefaultBackend,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ACROBOT_STORE_BACKEND"),
				toml.TOML("store.backend", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "sqlite-path",
			Usage: "SQLite database file path (default: XDG data directory)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ACROBOT_SQLITE_PATH"),
				toml.TOML("store.sqlite_path", configFilePath),
			),
		},
		&cli.StringSliceFlag{
			Name:  "etcd-endpoint-urls",
			Usage: "one or more etcd server endpoint URLs",
			Value: []string{DefaultEtcdEndpoint},
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ETCD_ENDPOINTS"),
				toml.TOML("etcd.endpoint_urls", configFilePath),
			),
		},
		&cli.StringFlag{
			Name:  "etcd-key-prefix",
			Usage: "key prefix for acronym entries in etcd",
			Value: DefaultEtcdPrefix,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("ETCD_KEY_PREFIX"),
				toml.TOML("etcd.key_prefix", configFilePath),
			),
		},
	}
}

// Open initializes the [Store] backend selected by the given CLI
// configuration. Dev mode defaults to the in-memory backend, unless
// a backend was selected explicitly.
func Open(cmd *cli.Command) (Store, error) {
	backend := cmd.String("store-backend")
	if cmd.Bool("dev") && !cmd.IsSet("store-backend") {
		backend = "memory"
	}

	switch backend {
	case "sqlite":
		path := cmd.String("sqlite-path")
		if path == "" {
			var err error
			path, err = xdg.CreateFile(xdg.DataHome, dataDirName, dataDBName)
			if err != nil {
				return nil, fmt.Errorf("failed to create SQLite database file: %w", err)
			}
		}
		return NewSQLite(path)
	case "etcd":
		return NewEtcd(cmd.StringSlice("etcd-endpoint-urls"), cmd.String("etcd-key-prefix"))
	case "memory":
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unrecognized storage backend: %q", backend)
	}
}
