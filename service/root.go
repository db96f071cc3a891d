// Package service implements the myblog command line: the web server and
// the database maintenance commands.
package service

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"myblog/app/config"
	"myblog/app/logger"
	"myblog/app/repositories"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the CLI version.
const Version = "1.0.0"

// runtime carries what the subcommands share once the root command has
// loaded the configuration.
type runtime struct {
	configFile string
	envFile    string

	cfg *config.Config
	log *zap.SugaredLogger
}

func (rt *runtime) setup() error {
	cfg, err := config.Load(config.Options{ConfigFile: rt.configFile, EnvFile: rt.envFile})
	if err != nil {
		return err
	}
	log, err := logger.Run(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	rt.cfg = cfg
	rt.log = log
	return nil
}

func (rt *runtime) openStore() (*repositories.Store, error) {
	return repositories.Open(repositories.Options{
		Driver: rt.cfg.Storage.Driver,
		Path:   rt.cfg.Storage.Path,
		DSN:    rt.cfg.Storage.DSN,
		Logger: rt.log,
	})
}

func (rt *runtime) isBadger() bool {
	return rt.cfg.Storage.Driver == repositories.DriverBadger
}

// RootCommand creates and returns the root command
func RootCommand() *cobra.Command {
	rt := &runtime{}

	rootCmd := &cobra.Command{
		Use:           "myblog",
		Short:         "A small blog with entries and comments",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&rt.configFile, "config", "", "config file (default ./myblog.yaml)")
	rootCmd.PersistentFlags().StringVar(&rt.envFile, "env-file", ".env", "dotenv file read before the environment")

	versionCmd := versionCommand()
	rootCmd.AddCommand(
		versionCmd,
		serveCommand(rt),
		initCommand(rt),
		cleanCommand(rt),
		backupCommand(rt),
		restoreCommand(rt),
		seedCommand(rt),
		entryCommand(rt),
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == versionCmd.Name() {
			return nil
		}
		return rt.setup()
	}

	return rootCmd
}

// Execute runs the command line and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := RootCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	return 0
}

func versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "myblog version %s\n", Version)
		},
	}
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, question string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", question)
	response, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	response = strings.TrimSpace(response)
	return response == "y" || response == "Y"
}

func pathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
