package service

import (
	"fmt"
	"math/rand"
	"strings"

	"myblog/app/services"

	"github.com/jaswdr/faker"
	"github.com/spf13/cobra"
)

// seedData fills the store with generated entries, each with up to
// maxComments comments.
func seedData(entries *services.EntryService, comments *services.CommentService, f faker.Faker, count, maxComments int) (int, int, error) {
	var nEntries, nComments int
	for i := 0; i < count; i++ {
		title := strings.TrimSuffix(f.Lorem().Sentence(f.IntBetween(3, 8)), ".")
		author := f.Person().Name()
		body := f.Lorem().Paragraph(f.IntBetween(2, 5))

		entry, err := entries.CreateEntry(title, author, body)
		if err != nil {
			return nEntries, nComments, fmt.Errorf("failed to create entry %d: %w", i+1, err)
		}
		nEntries++

		for j := 0; j < f.IntBetween(0, maxComments); j++ {
			_, err := comments.CreateComment(entry.ID,
				f.Person().FirstName(),
				f.Internet().Email(),
				f.Lorem().Sentence(f.IntBetween(5, 15)),
			)
			if err != nil {
				return nEntries, nComments, fmt.Errorf("failed to create comment on entry %d: %w", entry.ID, err)
			}
			nComments++
		}
	}
	return nEntries, nComments, nil
}

func seedCommand(rt *runtime) *cobra.Command {
	var (
		count       int
		maxComments int
		seed        int64
	)
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Fill the database with generated entries and comments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if count < 1 {
				return fmt.Errorf("--entries must be at least 1")
			}
			if maxComments < 0 {
				return fmt.Errorf("--comments must not be negative")
			}

			store, err := rt.openStore()
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer store.Close()

			f := faker.New()
			if seed != 0 {
				f = faker.NewWithSeed(rand.NewSource(seed))
			}

			entries := services.NewEntryService(store.Entries, store.Comments, services.WithPerPage(rt.cfg.Blog.PerPage))
			comments := services.NewCommentService(store.Comments, store.Entries)
			nEntries, nComments, err := seedData(entries, comments, f, count, maxComments)
			if err != nil {
				return err
			}

			rt.log.Infow("database seeded", "entries", nEntries, "comments", nComments)
			fmt.Fprintf(cmd.OutOrStdout(), "Seeded %d entries and %d comments\n", nEntries, nComments)
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "entries", "n", 10, "number of entries to create")
	cmd.Flags().IntVar(&maxComments, "comments", 5, "maximum number of comments per entry")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for reproducible data (0 picks a random seed)")
	return cmd
}
