package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/kode4food/timeline"
	"github.com/kode4food/timeline/internal/document"
)

var (
	cfgFile string
	logger  *zap.Logger
	loader  *document.Loader
)

var rootCmd = &cobra.Command{
	Use:   "timeline",
	Short: "Place events on timelines described by YAML documents",
	Long: `timeline loads schedule documents onto in-memory timelines and answers
questions about them.

A document names its timeline, whether events may overlap, how conflicts
are resolved, and what the times are measured in. Events that only give a
duration are placed in the first gap that can hold them.`,
	SilenceUsage:      true,
	PersistentPreRunE: initLoader,
	PersistentPostRun: func(*cobra.Command, []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	defaults := document.DefaultDefaults()
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/timeline/config.yaml)")
	flags.String("mode", string(defaults.Mode), "Mode for documents that don't name one (overlap, exclusive)")
	flags.String("policy", string(defaults.Policy), "Conflict policy for documents that don't name one (discard, delay)")
	flags.String("axis", string(defaults.Axis), "Time axis for documents that don't name one (int, float, duration, time)")
	flags.Int("max-timelines", timeline.DefaultMaxTimelines, "Maximum number of timelines per axis")
	flags.Bool("evict-idle", timeline.DefaultEvictIdle, "Evict the least recently used timeline instead of failing when full")
	flags.BoolP("verbose", "v", false, "Log debug output to stderr")

	viper.BindPFlag("mode", flags.Lookup("mode"))
	viper.BindPFlag("policy", flags.Lookup("policy"))
	viper.BindPFlag("axis", flags.Lookup("axis"))
	viper.BindPFlag("max_timelines", flags.Lookup("max-timelines"))
	viper.BindPFlag("evict_idle", flags.Lookup("evict-idle"))
	viper.BindPFlag("verbose", flags.Lookup("verbose"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(filepath.Join(home, ".config", "timeline"))
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TIMELINE")
	viper.AutomaticEnv()

	defaults := document.DefaultDefaults()
	viper.SetDefault("mode", string(defaults.Mode))
	viper.SetDefault("policy", string(defaults.Policy))
	viper.SetDefault("axis", string(defaults.Axis))
	viper.SetDefault("max_timelines", timeline.DefaultMaxTimelines)
	viper.SetDefault("evict_idle", timeline.DefaultEvictIdle)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func initLoader(*cobra.Command, []string) error {
	var err error
	logger, err = newLogger(viper.GetBool("verbose"))
	if err != nil {
		return err
	}

	cfg := timeline.Config{
		MaxTimelines: viper.GetInt("max_timelines"),
		EvictIdle:    viper.GetBool("evict_idle"),
	}
	defaults := document.Defaults{
		Mode:   document.Mode(viper.GetString("mode")),
		Policy: document.Policy(viper.GetString("policy")),
		Axis:   document.Axis(viper.GetString("axis")),
	}
	loader, err = document.NewLoader(cfg, defaults, logger)
	return err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	return cfg.Build()
}

// load builds each document at paths, in order
func load(paths ...string) ([]document.Querier, error) {
	res := make([]document.Querier, 0, len(paths))
	for _, path := range paths {
		doc, err := document.Load(path)
		if err != nil {
			return nil, err
		}
		q, err := loader.Build(doc)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		res = append(res, q)
	}
	return res, nil
}

func printPlacements(w io.Writer, ps []document.Placement) {
	if len(ps) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, p := range ps {
		fmt.Fprintf(w, "  %s\n", p)
	}
}
