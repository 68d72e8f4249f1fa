package config

import (
	"runtime"
	"strings"

	"github.com/nats-io/nats.go"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigBoardSize               = "board-size"
	ConfigDifficulty              = "difficulty"
	ConfigCandidateRadius         = "candidate-radius"
	ConfigCandidateLimit          = "candidate-limit"
	ConfigEvalCache               = "eval-cache"
	ConfigEvalCacheMemoryFraction = "eval-cache-memory-fraction"
	ConfigSeed                    = "seed"
	ConfigDebug                   = "debug"
	ConfigNatsURL                 = "nats-url"
	ConfigBotSubject              = "bot-subject"
	ConfigAutoplayGames           = "autoplay-games"
	ConfigAutoplayThreads         = "autoplay-threads"
	ConfigAutoplayOutput          = "autoplay-output"
	ConfigAutoplayOpeningPlies    = "autoplay-opening-plies"
	ConfigAutoplayP1              = "p1"
	ConfigAutoplayP2              = "p2"
	ConfigConfigFile              = "config-file"
)

// Config wraps a viper instance. Values come, in decreasing priority, from
// flags, GOMOKU_* environment variables, an optional config file, and the
// defaults set here.
type Config struct {
	*viper.Viper
	args []string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigBoardSize, 15)
	v.SetDefault(ConfigDifficulty, 2)
	v.SetDefault(ConfigCandidateRadius, 2)
	v.SetDefault(ConfigCandidateLimit, 20)
	v.SetDefault(ConfigEvalCache, false)
	v.SetDefault(ConfigEvalCacheMemoryFraction, 0.01)
	v.SetDefault(ConfigSeed, 0)
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigNatsURL, nats.DefaultURL)
	v.SetDefault(ConfigBotSubject, "gomoku.bot")
	v.SetDefault(ConfigAutoplayGames, 100)
	v.SetDefault(ConfigAutoplayThreads, runtime.NumCPU())
	v.SetDefault(ConfigAutoplayOutput, "/tmp/autoplay.csv")
	v.SetDefault(ConfigAutoplayOpeningPlies, 2)
	v.SetDefault(ConfigAutoplayP1, 2)
	v.SetDefault(ConfigAutoplayP2, 2)
	v.SetDefault(ConfigConfigFile, "")
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix("gomoku")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultConfig returns a config holding only defaults and environment
// overrides. Tests use it directly.
func DefaultConfig() *Config {
	return &Config{Viper: newViper()}
}

// Load parses command-line args and reads the config file, if one is named.
func (c *Config) Load(args []string) error {
	c.Viper = newViper()

	fs := pflag.NewFlagSet("gomoku", pflag.ContinueOnError)
	fs.Int(ConfigBoardSize, 15, "board dimension")
	fs.Int(ConfigDifficulty, 2, "AI difficulty, 1 to 3")
	fs.Int(ConfigCandidateRadius, 2, "distance from existing stones at which empty cells become candidates")
	fs.Int(ConfigCandidateLimit, 20, "maximum number of candidate moves searched per node")
	fs.Bool(ConfigEvalCache, false, "cache leaf evaluations by position hash")
	fs.Float64(ConfigEvalCacheMemoryFraction, 0.01, "fraction of system memory for the evaluation cache")
	fs.Int64(ConfigSeed, 0, "seed for the easy-difficulty random source; 0 is non-deterministic")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigNatsURL, nats.DefaultURL, "the NATS server URL")
	fs.String(ConfigBotSubject, "gomoku.bot", "the NATS subject the bot listens on")
	fs.Int(ConfigAutoplayGames, 100, "number of computer-vs-computer games")
	fs.Int(ConfigAutoplayThreads, runtime.NumCPU(), "number of games played in parallel")
	fs.String(ConfigAutoplayOutput, "/tmp/autoplay.csv", "where autoplay writes its game log")
	fs.Int(ConfigAutoplayOpeningPlies, 2, "random plies played before the engines take over")
	fs.Int(ConfigAutoplayP1, 2, "difficulty of the first autoplay engine")
	fs.Int(ConfigAutoplayP2, 2, "difficulty of the second autoplay engine")
	fs.String(ConfigConfigFile, "", "optional config file (yaml, toml, json)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	c.args = fs.Args()
	if err := c.BindPFlags(fs); err != nil {
		return err
	}
	if cfgFile := c.GetString(ConfigConfigFile); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// Args are the positional arguments left after flag parsing.
func (c *Config) Args() []string {
	return c.args
}
