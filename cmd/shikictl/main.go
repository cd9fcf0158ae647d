package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/bobmcallan/shiki/internal/app"
	"github.com/bobmcallan/shiki/pkg/common"
	"github.com/bobmcallan/shiki/pkg/shikimori"
)

const usage = `usage: shikictl [-config path] [-env path] <command> [args]

commands:
  auth-url          print the page that issues an authorization code
  whoami            show the authorized user
  anime <id>        show one anime
  search <query>    search animes by name (-limit n)
  logout            revoke the stored token and sign out
  version           print build information
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "shikictl: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	flags := flag.NewFlagSet("shikictl", flag.ContinueOnError)
	flags.Usage = func() { fmt.Fprint(flags.Output(), usage) }
	configPath := flags.String("config", "", "config file (default $SHIKI_CONFIG or shiki.toml)")
	envPath := flags.String("env", ".env", "dotenv file loaded before the config")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if flags.NArg() == 0 {
		flags.Usage()
		return errors.New("no command given")
	}

	// Existing environment variables win over the dotenv file
	if err := godotenv.Load(*envPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", *envPath, err)
	}

	cmd, rest := flags.Arg(0), flags.Args()[1:]
	switch cmd {
	case "version":
		return version(out, *configPath)
	case "auth-url":
		return authURL(out, *configPath)
	case "whoami":
		return withClient(ctx, *configPath, func(ctx context.Context, c *shikimori.Client) error {
			if c.Restricted() {
				return shikimori.ErrRestricted
			}
			user, err := c.Users.WhoAmI(ctx)
			if err != nil {
				return err
			}
			return printJSON(out, user)
		})
	case "anime":
		if len(rest) != 1 {
			return errors.New("usage: shikictl anime <id>")
		}
		id, err := strconv.Atoi(rest[0])
		if err != nil {
			return fmt.Errorf("invalid anime id %q", rest[0])
		}
		return withClient(ctx, *configPath, func(ctx context.Context, c *shikimori.Client) error {
			anime, err := c.Animes.Get(ctx, id)
			if err != nil {
				return err
			}
			if anime == nil {
				return fmt.Errorf("anime %d not found", id)
			}
			return printJSON(out, anime)
		})
	case "search":
		return search(ctx, out, *configPath, rest)
	case "logout":
		return withClient(ctx, *configPath, func(ctx context.Context, c *shikimori.Client) error {
			if err := c.Logout(ctx); err != nil {
				return err
			}
			fmt.Fprintln(out, "Signed out")
			return nil
		})
	default:
		flags.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func withClient(ctx context.Context, configPath string, fn func(ctx context.Context, c *shikimori.Client) error) error {
	a, err := app.NewApp(configPath)
	if err != nil {
		return err
	}
	defer a.Close(ctx)
	return a.Run(ctx, fn)
}

func version(out io.Writer, configPath string) error {
	common.LoadVersionFromFile()
	if configPath == "" {
		configPath = os.Getenv(app.ConfigEnv)
	}
	config, err := common.LoadConfig(configPath)
	if err != nil {
		return err
	}
	common.PrintBanner(out, config)
	return nil
}

// authURL prints the authorization page. It works before an auth code has
// been configured, which is when it is needed.
func authURL(out io.Writer, configPath string) error {
	a, err := app.NewApp(configPath)
	var cfgErr *shikimori.ConfigError
	if errors.As(err, &cfgErr) && cfgErr.AuthorizationURL != "" {
		fmt.Fprintln(out, cfgErr.AuthorizationURL)
		return nil
	}
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	u, err := a.Client.AuthorizationURL()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, u)
	return nil
}

func search(ctx context.Context, out io.Writer, configPath string, args []string) error {
	flags := flag.NewFlagSet("search", flag.ContinueOnError)
	limit := flags.Int("limit", 10, "maximum number of results")
	if err := flags.Parse(args); err != nil {
		return err
	}
	query := strings.TrimSpace(strings.Join(flags.Args(), " "))
	if query == "" {
		return errors.New("usage: shikictl search [-limit n] <query>")
	}

	return withClient(ctx, configPath, func(ctx context.Context, c *shikimori.Client) error {
		animes, err := c.Animes.List(ctx, shikimori.AnimeFilter{
			Page:   shikimori.Page{Limit: *limit},
			Search: query,
		})
		if err != nil {
			return err
		}
		for _, a := range animes {
			fmt.Fprintf(out, "%-8d %s\n", a.ID, a.Name)
		}
		return nil
	})
}

func printJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
