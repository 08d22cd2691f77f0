package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/iwannatoa/ooc-app/pkg/config"
	"github.com/iwannatoa/ooc-app/pkg/logger"
	"github.com/iwannatoa/ooc-app/pkg/tui"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "ooc",
	Short: "Streaming writing assistant",
	Long:  `Chat with a local or remote language model, with reasoning spans rendered separately from prose.`,
	Run: func(cmd *cobra.Command, args []string) {
		promptValue := viper.GetString("prompt")
		plainMode := viper.GetBool("plain")
		continueHistory := viper.GetBool("continue")

		settings := config.Get()
		if err := logger.Init(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
		}
		defer logger.Close()

		if plainMode || promptValue != "" {
			runPlain(settings, promptValue, continueHistory)
			return
		}

		if err := tui.StartApp(settings, continueHistory); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
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

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", ".ooc/settings.yaml", "config file (default is .ooc/settings.yaml)")

	rootCmd.PersistentFlags().StringP("log-level", "l", "info", "log level")
	viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.PersistentFlags().Bool("continue", false, "continue from previous chat history instead of starting fresh")
	viper.BindPFlag("continue", rootCmd.PersistentFlags().Lookup("continue"))

	rootCmd.PersistentFlags().StringP("prompt", "p", "", "execute a prompt directly without entering the TUI")
	viper.BindPFlag("prompt", rootCmd.PersistentFlags().Lookup("prompt"))

	rootCmd.PersistentFlags().Bool("plain", false, "run without the TUI (requires --prompt)")
	viper.BindPFlag("plain", rootCmd.PersistentFlags().Lookup("plain"))

	rootCmd.PersistentFlags().Bool("show-thinking", true, "print reasoning spans in plain mode")
	viper.BindPFlag("show_thinking", rootCmd.PersistentFlags().Lookup("show-thinking"))
}

func initConfig() {
	if err := config.Init(cfgFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
}
