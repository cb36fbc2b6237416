package main

import (
	"fmt"
	"os"

	"github.com/edgeflare/pgrest/pkg/config"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var cfgFile string
var logLevel string
var cfg *config.Config
var logger *zap.Logger

var rootCmd = &cobra.Command{
	Use:   "pgrest",
	Short: "pgrest queries PostgREST-compatible APIs",
	Long:  `pgrest is a command-line client for PostgREST endpoints: select, insert, update, upsert and delete rows over HTTP`,
	Run: func(cmd *cobra.Command, args []string) {
		versionFlag, _ := cmd.Flags().GetBool("version")
		if versionFlag {
			fmt.Println(config.Version)
			return
		}

		// If no subcommand is provided, print help
		cmd.Help()
	},
}

func Main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initLogger)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/pgrest.yaml)")
	rootCmd.PersistentFlags().StringVarP(&logLevel, "log-level", "L", "info", "log at this level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "Print the version number")
	rootCmd.PersistentFlags().String("url", "", "PostgREST endpoint URL (overrides config)")
	rootCmd.PersistentFlags().String("token", "", "Bearer token (overrides config)")
	rootCmd.PersistentFlags().String("schema", "", "Database schema (overrides config)")
}

func initConfig() {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	if url, _ := rootCmd.PersistentFlags().GetString("url"); url != "" {
		cfg.BaseURL = url
	}
	if token, _ := rootCmd.PersistentFlags().GetString("token"); token != "" {
		cfg.Token = token
	}
	if schema, _ := rootCmd.PersistentFlags().GetString("schema"); schema != "" {
		cfg.Schema = schema
	}
}

func initLogger() {
	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(level)
	logger, err = zcfg.Build()
	if err != nil {
		fmt.Println("Error creating logger:", err)
		os.Exit(1)
	}
}
