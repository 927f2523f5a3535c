package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/martijn/shopadmin/internal/adapter/shopapi"
	"github.com/martijn/shopadmin/internal/logger"
	"github.com/martijn/shopadmin/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

const (
	OutputTable = "table"
	OutputJSON  = "json"
)

var (
	cfgFile string
	profile string
	output  string
	cfg     *config.Config
	log     *logger.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "shopadmin",
	Short: "shopadmin - Administration console for the shop API",
	Long: `shopadmin administers a shop through its REST API.

It provides:
- Product, user, role, permission, brand, category and coupon management
- Paged, filtered and sorted listings that remember their position
- Transparent access token refresh
- A backend-for-frontend server for the browser admin`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config loading for commands that don't need it
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		if output != OutputTable && output != OutputJSON {
			return fmt.Errorf("--output must be %q or %q", OutputTable, OutputJSON)
		}
		if strings.TrimSpace(profile) == "" {
			return fmt.Errorf("--profile must not be empty")
		}

		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load .env: %w", err)
		}

		// Load configuration
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log = logger.New(cfg.LogLevel, cfg.LogFile, cfg.IsDevMode())

		// The profile is the CLI's session; the command line is its current path.
		ctx := shopapi.WithSession(cmd.Context(), profile)
		ctx = shopapi.WithCurrentPath(ctx, commandLine(cmd, args))
		cmd.SetContext(ctx)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// commandLine rebuilds the invocation from the command path, the flags that
// were set and the positional args.
func commandLine(cmd *cobra.Command, args []string) string {
	parts := []string{cmd.CommandPath()}
	cmd.Flags().Visit(func(f *pflag.Flag) {
		parts = append(parts, "--"+f.Name+"="+shellQuote(f.Value.String()))
	})
	for _, arg := range args {
		parts = append(parts, shellQuote(arg))
	}
	return strings.Join(parts, " ")
}

func shellQuote(s string) string {
	if s != "" && !strings.ContainsAny(s, " \t\n'\"$`\\|;&<>()*?") {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.config/shopadmin/config.yml)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "default", "session profile to use")
	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", OutputTable, "output format: table or json")
}
