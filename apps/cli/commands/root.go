package commands

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"

	"github.com/trezcool/studytrack/client"
	"github.com/trezcool/studytrack/client/cache"
)

const (
	envPrefix     = "STUDYTRACK"
	defaultAPIURL = "http://localhost:8000"
)

var readPasswordFunc = term.ReadPassword // mockable

// app holds what every command needs; it is built once the flags are parsed.
type app struct {
	conf   *viper.Viper
	client *client.Client
	cache  *cache.Cache
}

// NewRootCmd builds the `studytrack` command tree.
func NewRootCmd() *cobra.Command {
	a := &app{conf: viper.New()}

	rootCmd := &cobra.Command{
		Use:           "studytrack",
		Short:         "Track your subjects and tasks from the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.String("api-url", defaultAPIURL, "gateway base URL")
	flags.String("token", "", "bearer token (defaults to the one saved by `signin`)")
	flags.String("config", defaultConfigPath(), "config file")
	flags.Duration("cache-ttl", cache.DefaultTTL, "how long fetched data is served without a new fetch")
	_ = a.conf.BindPFlag("api_url", flags.Lookup("api-url"))
	_ = a.conf.BindPFlag("token", flags.Lookup("token"))
	_ = a.conf.BindPFlag("config", flags.Lookup("config"))
	_ = a.conf.BindPFlag("cache_ttl", flags.Lookup("cache-ttl"))

	rootCmd.AddCommand(
		a.newSignUpCmd(),
		a.newSignInCmd(),
		a.newSubjectsCmd(),
		a.newTasksCmd(),
		a.newBoardCmd(),
		a.newStatsCmd(),
		a.newProfileCmd(),
	)
	return rootCmd
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".studytrack", "config.yaml")
	}
	return filepath.Join(home, ".studytrack", "config.yaml")
}

func (a *app) init() error {
	a.conf.SetEnvPrefix(envPrefix)
	a.conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.conf.AutomaticEnv()

	if path := a.conf.GetString("config"); path != "" {
		a.conf.SetConfigFile(path)
		if err := a.conf.ReadInConfig(); err != nil && !os.IsNotExist(err) {
			return errors.Wrap(err, "reading config")
		}
	}

	a.client = client.New(a.conf.GetString("api_url"), a.conf.GetString("token"))
	a.cache = cache.New(a.client, cache.Options{
		TTL:                            a.conf.GetDuration("cache_ttl"),
		InvalidateTasksOnSubjectDelete: true,
	})
	return nil
}

// saveToken persists the token in the config file for the next invocations.
func (a *app) saveToken(token string) error {
	path := a.conf.GetString("config")
	if path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return errors.Wrap(err, "creating config directory")
	}

	v := viper.New()
	v.SetConfigFile(path)
	_ = v.ReadInConfig()
	v.Set("token", token)
	v.Set("api_url", a.conf.GetString("api_url"))
	return errors.Wrap(v.WriteConfigAs(path), "writing config")
}

func (a *app) requireToken() error {
	if a.client.Token() == "" {
		return errors.New("not signed in: run `studytrack signin` or set " + envPrefix + "_TOKEN")
	}
	return nil
}
