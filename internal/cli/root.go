package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/relab/majority/logging"
	"github.com/relab/majority/proposer"
	"github.com/spf13/cobra"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// rootCmd represents the base command when called without any subcommands
var (
	listStrategies bool
	cfgFile        string

	rootCmd = &cobra.Command{
		Use:   "majority",
		Short: "A command-line utility for resolving majority-vote rounds.",
		Long: `majority resolves rounds of majority-vote consensus.
In each round, every proposer proposes one value from the candidate domain,
and the value proposed most often is agreed on. Ties go to the value that
was proposed first.

To resolve a single round, use the 'majority resolve' command.
To run many rounds and collect statistics, use 'majority bench'.
Use 'majority help resolve' to view all possible parameters for a round.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !listStrategies {
				return cmd.Usage()
			}
			for _, name := range proposer.Names[string]() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.Flags().BoolVar(&listStrategies, "list-strategies", false, "list available proposer strategies")

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.majority.yaml)")

	rootCmd.PersistentFlags().String("log-level", "info", "sets the log level (debug, info, warn, error)")
	cobra.CheckErr(viper.BindPFlag("log-level", rootCmd.PersistentFlags().Lookup("log-level")))
	rootCmd.PersistentFlags().StringSlice("log-pkgs", []string{}, "set the log level on a per-package basis (package:level)")
	cobra.CheckErr(viper.BindPFlag("log-pkgs", rootCmd.PersistentFlags().Lookup("log-pkgs")))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".majority" (without extension).
		viper.AddConfigPath(home)
		viper.SetConfigName(".majority")
	}

	viper.SetEnvPrefix("majority")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	} else if cfgFile != "" {
		cobra.CheckErr(err)
	}

	cobra.CheckErr(logging.SetLogLevel(viper.GetString("log-level")))
	cobra.CheckErr(logging.SetPackageLogLevels(viper.GetStringSlice("log-pkgs")))
}
