package cmd

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/judwhite/go-svc"
	"github.com/massdb/massdb/internal/options"
	"github.com/massdb/massdb/internal/server"
	"github.com/massdb/massdb/pkg/mlog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile    string
	serverOpts = options.New()
	role       string
	bootstrap  bool
	mode       string
	rootCmd    = &cobra.Command{
		Use:   "massdb",
		Short: "massdb, a shared-nothing distributed MPP database node.",
		Long:  `massdb, a shared-nothing distributed MPP database node. The same binary runs as coordinator, worker, standby, gtm or catalog service depending on the configured role.`,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		Run: func(cmd *cobra.Command, args []string) {
			initServer()
		},
	}
)

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
	rootCmd.PersistentFlags().StringVar(&mode, "mode", "debug", "mode")
	rootCmd.PersistentFlags().StringVar(&role, "role", "", "node role (master|segment|standby|gtm|catalogservice)")
	rootCmd.PersistentFlags().BoolVar(&bootstrap, "bootstrap", false, "run in bootstrap (initdb) mode")
}

func initConfig() {
	vp := viper.New()
	if cfgFile != "" {
		vp.SetConfigFile(cfgFile)
		if err := vp.ReadInConfig(); err == nil {
			fmt.Println("Using config file:", vp.ConfigFileUsed())
		}
	}

	vp.SetEnvPrefix("massdb")
	vp.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	vp.AutomaticEnv()
	serverOpts.ConfigureWithViper(vp)
	_ = vp.BindPFlags(rootCmd.Flags())

	if role != "" {
		serverOpts.Role = role
	}
	if bootstrap {
		serverOpts.Bootstrap = true
	}
}

func initServer() {
	logOpts := mlog.NewOptions()
	logOpts.Level = serverOpts.Logger.Level
	logOpts.LogDir = serverOpts.Logger.Dir
	logOpts.LineNum = serverOpts.Logger.LineNum
	mlog.Configure(logOpts)

	s := server.New(serverOpts)

	// an unknown role surfaces here and ends the process
	if err := svc.Run(s); err != nil {
		log.Fatal(err)
	}
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
