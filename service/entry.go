package service

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"myblog/app/models"
	"myblog/app/repositories"
	"myblog/app/services"

	"github.com/spf13/cobra"
)

func entryCommand(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "entry",
		Short: "Manage blog entries",
	}
	cmd.AddCommand(entryCreateCommand(rt), entryDeleteCommand(rt))
	return cmd
}

func entryCreateCommand(rt *runtime) *cobra.Command {
	var title, author, body string
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := rt.openStore()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			entries := services.NewEntryService(store.Entries, store.Comments)
			entry, err := entries.CreateEntry(title, author, body)
			var verr *models.ValidationError
			if errors.As(err, &verr) {
				printFieldErrors(cmd, verr.Fields)
				return errors.New("entry is not valid")
			}
			if err != nil {
				return err
			}

			rt.log.Infow("entry created", "id", entry.ID, "slug", entry.Slug)
			fmt.Fprintf(cmd.OutOrStdout(), "Created entry %d at %s\n", entry.ID, entry.URL())
			return nil
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "entry title")
	cmd.Flags().StringVar(&author, "author", "", "entry author")
	cmd.Flags().StringVar(&body, "body", "", "entry body")
	return cmd
}

func entryDeleteCommand(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an entry and its comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.Atoi(args[0])
			if err != nil || id < 1 {
				return fmt.Errorf("invalid entry id %q", args[0])
			}

			store, err := rt.openStore()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			entries := services.NewEntryService(store.Entries, store.Comments)
			if err := entries.DeleteEntry(id); err != nil {
				if errors.Is(err, repositories.ErrNotFound) {
					return fmt.Errorf("entry %d not found", id)
				}
				return err
			}
			rt.log.Infow("entry deleted", "id", id)
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted entry %d\n", id)
			return nil
		},
	}
}

func printFieldErrors(cmd *cobra.Command, fields models.FieldErrors) {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, msg := range fields[name] {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", name, msg)
		}
	}
}
