package service

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var errBadgerOnly = errors.New("this command needs the badger storage driver")

func initCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize a new empty database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if rt.isBadger() {
				if pathExists(rt.cfg.Storage.Path) {
					fmt.Fprintln(out, "Database already exists. Use 'clean' first if you want to reinitialize.")
					return nil
				}
				if err := os.MkdirAll(rt.cfg.Storage.Path, 0o755); err != nil {
					return fmt.Errorf("failed to create database directory: %w", err)
				}
			}

			store, err := rt.openStore()
			if err != nil {
				return fmt.Errorf("failed to initialize database: %w", err)
			}
			if err := store.Close(); err != nil {
				return err
			}
			fmt.Fprintln(out, "Database initialized successfully")
			return nil
		},
	}
}

func cleanCommand(rt *runtime) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "clean",
		Short: "Remove every entry and comment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if rt.isBadger() && !pathExists(rt.cfg.Storage.Path) {
				fmt.Fprintln(out, "Database is already clean (does not exist)")
				return nil
			}

			if !yes && !confirm(cmd, "Are you sure you want to clean the database? This cannot be undone.") {
				fmt.Fprintln(out, "Operation cancelled")
				return nil
			}

			if rt.isBadger() {
				if err := os.RemoveAll(rt.cfg.Storage.Path); err != nil {
					return fmt.Errorf("failed to clean database: %w", err)
				}
			} else {
				store, err := rt.openStore()
				if err != nil {
					return err
				}
				defer store.Close()
				if err := store.Clear(); err != nil {
					return fmt.Errorf("failed to clean database: %w", err)
				}
			}
			rt.log.Infow("database cleaned", "driver", rt.cfg.Storage.Driver)
			fmt.Fprintln(out, "Database cleaned successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func backupCommand(rt *runtime) *cobra.Command {
	var dir string
	cmd := &cobra.Command{
		Use:   "backup",
		Short: "Create a backup of the database",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if !rt.isBadger() {
				return errBadgerOnly
			}
			if !pathExists(rt.cfg.Storage.Path) {
				fmt.Fprintln(out, "No database exists to backup")
				return nil
			}
			if dir == "" {
				dir = rt.cfg.Backup.Dir
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("failed to create backup directory: %w", err)
			}

			store, err := rt.openStore()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().Unix()))
			sum, err := writeBackup(store.Badger, backupFile)
			if err != nil {
				return err
			}
			rt.log.Infow("database backed up", "file", backupFile, "sha3_256", sum)
			fmt.Fprintf(out, "Database backed up successfully to %s\n", backupFile)
			return nil
		},
	}
	cmd.Flags().StringVar(&dir, "dir", "", "backup directory (default from config backup.dir)")
	return cmd
}

func restoreCommand(rt *runtime) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "restore <file>",
		Short: "Restore the database from a backup",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			backupFile := args[0]
			if !rt.isBadger() {
				return errBadgerOnly
			}
			if !pathExists(backupFile) {
				return fmt.Errorf("backup file does not exist: %s", backupFile)
			}
			if err := verifyBackup(backupFile); err != nil {
				if !errors.Is(err, errNoChecksum) {
					return err
				}
				rt.log.Warnw("restoring a backup without checksum", "file", backupFile)
			}

			dbPath := rt.cfg.Storage.Path
			if pathExists(dbPath) {
				if !yes && !confirm(cmd, "Existing database found. Do you want to replace it?") {
					fmt.Fprintln(out, "Operation cancelled")
					return nil
				}
				if err := os.RemoveAll(dbPath); err != nil {
					return fmt.Errorf("failed to remove existing database: %w", err)
				}
			}
			if err := os.MkdirAll(dbPath, 0o755); err != nil {
				return fmt.Errorf("failed to create database directory: %w", err)
			}

			store, err := rt.openStore()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			if err := loadBackup(store.Badger, backupFile); err != nil {
				return fmt.Errorf("failed to restore database: %w", err)
			}
			rt.log.Infow("database restored", "file", backupFile)
			fmt.Fprintln(out, "Database restored successfully")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "replace an existing database without asking")
	return cmd
}
