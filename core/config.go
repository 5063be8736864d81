package core

import (
	"log"
	"net/mail"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// store drivers
const (
	StoreMemory   = "memory"
	StoreBolt     = "bolt"
	StorePostgres = "postgres"
)

var Conf *Config

type (
	ServerConfig struct {
		Address            string
		Host               string
		CORSOrigins        []string
		DisableReqLogs     bool
		JWTExpirationDelta time.Duration
	}

	StoreConfig struct {
		Driver      string
		BoltPath    string
		PostgresDSN string
	}

	Config struct {
		Env              string // DEV (local; default), TEST, QA, PROD
		Build            string
		Debug            bool
		TestMode         bool
		AppName          string
		SecretKey        string
		FrontendBaseURL  string
		RollbarToken     string
		SendgridAPIKey   string
		CacheTTL         time.Duration
		Server           ServerConfig
		Store            StoreConfig
		defaultFromEmail string
	}
)

func init() {
	Conf = LoadConfig()
}

// LoadConfig reads the configuration from defaults, the optional `config/.env.<env>` file
// and the environment (prefixed by the uppercased env name, eg. `DEV_SECRETKEY`).
func LoadConfig() *Config {
	v := viper.New()

	// defaults
	v.SetTypeByDefaultValue(true)
	v.SetDefault("debug", true)
	v.SetDefault("build", "dev")
	v.SetDefault("appName", "Studytrack")
	v.SetDefault("secretKey", "poq5-wer)enb$+57=dz&uoxh2(h!x)#*c2(#yg4h^$cegm2emy")
	v.SetDefault("frontendBaseURL", "http://localhost:3000")
	v.SetDefault("defaultFromEmail", "Studytrack <noreply@localhost>")
	v.SetDefault("rollbarToken", "")
	v.SetDefault("sendgridAPIKey", "")
	v.SetDefault("cache.ttl", 30*time.Second)
	v.SetDefault("server.address", ":8000")
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.corsOrigins", []string{"*"})
	v.SetDefault("server.disableReqLogs", false)
	v.SetDefault("server.jwtExpirationDelta", 7*24*time.Hour)
	v.SetDefault("store.driver", StoreMemory)
	v.SetDefault("store.boltPath", filepath.Join("data", "studytrack.db"))
	v.SetDefault("store.postgresDSN", "")
	v.SetDefault("testMode", false)

	env := strings.ToUpper(os.Getenv("ENV"))
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		v.SetDefault("testMode", true)
	}
	v.SetEnvPrefix(env)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join("config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	v.AutomaticEnv()

	return &Config{
		Env:              env,
		Build:            v.GetString("build"),
		Debug:            v.GetBool("debug"),
		TestMode:         v.GetBool("testMode"),
		AppName:          v.GetString("appName"),
		SecretKey:        v.GetString("secretKey"),
		FrontendBaseURL:  v.GetString("frontendBaseURL"),
		RollbarToken:     v.GetString("rollbarToken"),
		SendgridAPIKey:   v.GetString("sendgridAPIKey"),
		CacheTTL:         v.GetDuration("cache.ttl"),
		defaultFromEmail: v.GetString("defaultFromEmail"),
		Server: ServerConfig{
			Address:            v.GetString("server.address"),
			Host:               v.GetString("server.host"),
			CORSOrigins:        v.GetStringSlice("server.corsOrigins"),
			DisableReqLogs:     v.GetBool("server.disableReqLogs"),
			JWTExpirationDelta: v.GetDuration("server.jwtExpirationDelta"),
		},
		Store: StoreConfig{
			Driver:      strings.ToLower(v.GetString("store.driver")),
			BoltPath:    v.GetString("store.boltPath"),
			PostgresDSN: v.GetString("store.postgresDSN"),
		},
	}
}

func (c *Config) DefaultFromEmail() mail.Address {
	addr, err := mail.ParseAddress(c.defaultFromEmail)
	if err != nil {
		return mail.Address{Name: c.AppName, Address: "noreply@localhost"}
	}
	return *addr
}
