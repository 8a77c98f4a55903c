package cmd

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/hance08/ledger/cmd/account"
	"github.com/hance08/ledger/cmd/transaction"
	"github.com/hance08/ledger/internal/app"
	"github.com/hance08/ledger/internal/config"
	"github.com/hance08/ledger/internal/errhandler"
)

var (
	cfgFile string
	bookRef string
	cfg     *config.Config
)

func Execute(migrations fs.FS) {
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " ERROR ",
		Style: pterm.NewStyle(pterm.BgLightRed, pterm.FgBlack),
	}

	cfgFile = configFlag(os.Args[1:])
	if err := initConfig(); err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	application, cleanup, err := app.NewApp(cfg, migrations)
	if err != nil {
		pterm.Error.Println(err)
		os.Exit(1)
	}

	err = NewRootCmd(application).Execute()
	cleanup()
	if err != nil {
		os.Exit(errhandler.HandleError(err))
	}
}

func NewRootCmd(application *app.App) *cobra.Command {
	svc := application.Service

	rootCmd := &cobra.Command{
		Use:   "ledger",
		Short: "ledger is a multi-book double-entry accounting engine",
		Long: `ledger records income, expenses and transfers as balanced double-entry
postings, keeps account balances in step with them, and serves the same
engine over a JSON HTTP API.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if bookRef != "" {
				svc.Config.Defaults.Book = bookRef
			}
		},
	}

	// --config is read before the app starts; declared here so cobra accepts it.
	rootCmd.PersistentFlags().StringP("config", "c", "", "set the config file path")
	rootCmd.PersistentFlags().StringVarP(&bookRef, "book", "b", "", "book id or name (defaults.book)")

	rootCmd.AddCommand(account.NewAccountCmd(svc))
	rootCmd.AddCommand(transaction.NewTransactionCmd(svc))

	rootCmd.AddCommand(NewAddCmd(svc))
	rootCmd.AddCommand(NewBookCmd(svc))
	rootCmd.AddCommand(NewCategoryCmd(svc))
	rootCmd.AddCommand(NewImportCmd(svc))
	rootCmd.AddCommand(NewVerifyCmd(svc))
	rootCmd.AddCommand(NewInfoCmd(application))
	rootCmd.AddCommand(NewServeCmd(application))

	return rootCmd
}

// configFlag picks --config out of the raw arguments; the config has to be
// loaded before the command tree exists.
func configFlag(args []string) string {
	flags := pflag.NewFlagSet("config", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist.UnknownFlags = true
	flags.SetOutput(io.Discard)
	path := flags.StringP("config", "c", "", "")
	flags.BoolP("help", "h", false, "")
	_ = flags.Parse(args)
	return *path
}

func initConfig() error {
	// A missing .env is normal.
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		appDir, err := app.AppDataDir()
		if err != nil {
			return fmt.Errorf("error getting app dir: %w", err)
		}

		viper.AddConfigPath(appDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")

		if err := createDefaultConfig(appDir); err != nil {
			return fmt.Errorf("failed to ensure config file: %w", err)
		}
	}

	viper.SetEnvPrefix("LEDGER")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // allow using environment variables to override

	if err := viper.ReadInConfig(); err != nil {
		if cfgFile != "" {
			return fmt.Errorf("failed to read config file: %w", err)
		}

		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return fmt.Errorf("config file error: %w", err)
		}
	}

	var err error
	cfg, err = loadConfig(viper.GetViper())
	return err
}

func loadConfig(v *viper.Viper) (*config.Config, error) {
	c := config.NewDefault()
	bindDefaults(v, c)
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %v", err)
	}
	c.ConfigPath = v.ConfigFileUsed()
	return c, nil
}

// bindDefaults registers every key with viper so AutomaticEnv can override
// keys the config file does not mention.
func bindDefaults(v *viper.Viper, c *config.Config) {
	v.SetDefault("database.path", c.Database.Path)
	v.SetDefault("defaults.currency", c.Defaults.Currency)
	v.SetDefault("defaults.book", c.Defaults.Book)
	v.SetDefault("defaults.user", c.Defaults.User)
	v.SetDefault("server.addr", c.Server.Addr)
	v.SetDefault("server.read_timeout", c.Server.ReadTimeout)
	v.SetDefault("server.write_timeout", c.Server.WriteTimeout)
	v.SetDefault("server.allowed_origins", c.Server.AllowedOrigins)
	v.SetDefault("log.level", c.Log.Level)
	v.SetDefault("log.format", c.Log.Format)
}

func createDefaultConfig(appDir string) error {
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	configPath := filepath.Join(appDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil {
		return nil
	}

	v := viper.New()
	bindDefaults(v, config.NewDefault())
	if err := v.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
