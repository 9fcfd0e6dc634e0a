package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/aretw0/deckhand/pkg/core"
)

var tricksCmd = &cobra.Command{
	Use:     "tricks",
	Aliases: []string{"trick"},
	Short:   "Manage the magic trick repertoire",
}

type trickFlags struct {
	name, genre, video, props, audience, notes, added string
	amazement, difficulty, minutes                    int
}

func (f *trickFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&f.name, "name", "", "Trick name")
	fs.StringVar(&f.genre, "genre", "", "Genre, e.g. \"Card (impromptu)\"")
	fs.IntVar(&f.amazement, "amazement", 3, "Amazement rating, 1 to 5")
	fs.IntVar(&f.difficulty, "difficulty", 3, "Difficulty rating, 1 to 5")
	fs.StringVar(&f.video, "video", "", "Tutorial or performance video URL")
	fs.IntVar(&f.minutes, "minutes", 0, "Performance time in minutes (0 if unknown)")
	fs.StringVar(&f.props, "props", "", "Props needed")
	fs.StringVar(&f.audience, "audience", string(core.AudienceAny), "Audience size (solo, small, medium, large, any)")
	fs.StringVar(&f.notes, "notes", "", "Free-form notes")
	fs.StringVar(&f.added, "added", "", "Added date (YYYY-MM-DD), edit only")
}

func (f *trickFlags) apply(fs *pflag.FlagSet, m *core.MagicTrick, all bool) error {
	set := func(name string) bool { return all || fs.Changed(name) }
	if set("name") {
		m.Name = f.name
	}
	if set("genre") {
		m.Genre = strings.TrimSpace(f.genre)
	}
	if set("amazement") {
		m.AmazementRating = f.amazement
	}
	if set("difficulty") {
		m.DifficultyRating = f.difficulty
	}
	if set("video") {
		m.VideoURL = f.video
	}
	if set("minutes") {
		m.PerformanceTime = f.minutes
	}
	if set("props") {
		m.PropsNeeded = f.props
	}
	if set("audience") {
		a, err := core.ParseAudienceSize(f.audience)
		if err != nil {
			return err
		}
		m.AudienceSize = a
	}
	if set("notes") {
		m.Notes = f.notes
	}
	if fs.Changed("added") {
		m.AddedDate = core.Date(f.added)
		if !m.AddedDate.Valid() {
			return fmt.Errorf("invalid --added %q, want YYYY-MM-DD", f.added)
		}
	}
	return nil
}

var (
	trickAdd  trickFlags
	trickEdit trickFlags
)

var tricksAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a trick",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		var m core.MagicTrick
		if err := trickAdd.apply(cmd.Flags(), &m, true); err != nil {
			fatal("Invalid trick", err)
		}
		if err := m.Validate(); err != nil {
			fatal("Invalid trick", err)
		}

		svc := openService(cfg)
		ctx := context.Background()
		created, err := svc.Tricks().Create(ctx, m)
		if err != nil {
			fatal("Failed to add trick", err)
		}
		if m.Genre != "" {
			if _, err := svc.AddVocabulary(ctx, core.Genres, m.Genre); err != nil {
				fatal("Failed to record genre", err)
			}
		}
		fmt.Printf("Added %s (%s)\n", created.Name, shortID(created.ID))
	},
}

var tricksEditCmd = &cobra.Command{
	Use:   "edit <id|name|#n>",
	Short: "Change fields of a trick",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := openService(cfg)
		ref := lookup(svc.Tricks(), args[0])
		m, err := svc.Tricks().Get(ref)
		if err != nil {
			fatal("Failed to find trick", err)
		}
		if err := trickEdit.apply(cmd.Flags(), &m, false); err != nil {
			fatal("Invalid trick", err)
		}
		if err := m.Validate(); err != nil {
			fatal("Invalid trick", err)
		}
		updated, err := svc.Tricks().Update(context.Background(), ref, m)
		if err != nil {
			fatal("Failed to update trick", err)
		}
		fmt.Printf("Updated %s\n", updated.Name)
	},
}

var tricksRmCmd = &cobra.Command{
	Use:     "rm <id|name|#n>",
	Aliases: []string{"delete"},
	Short:   "Remove a trick",
	Args:    cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		svc := openService(cfg)
		removed, err := svc.Tricks().Remove(context.Background(), lookup(svc.Tricks(), args[0]))
		if err != nil {
			fatal("Failed to remove trick", err)
		}
		fmt.Printf("Removed %s\n", removed.Name)
	},
}

var (
	trickSearch   string
	trickGenre    string
	trickAudience string
	trickMaxDiff  int
	trickSort     string
	trickOrder    string
	trickJSON     bool
)

var tricksListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tricks",
	Args:    cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		key, dir, err := sortOrder(trickSort, trickOrder)
		if err != nil {
			fatal("Invalid sort", err)
		}
		q := core.Query[core.MagicTrick]{
			Where: []core.Predicate[core.MagicTrick]{
				core.LabelContains[core.MagicTrick](trickSearch),
				core.TrickGenreIs(trickGenre),
				core.TrickAudienceIs(trickAudience),
			},
			Sort:      key,
			Direction: dir,
		}
		if trickMaxDiff > 0 {
			q.Where = append(q.Where, core.TrickDifficultyAtMost(trickMaxDiff))
		}

		svc := openService(cfg)
		tricks := svc.Tricks().Query(q)
		if trickJSON {
			printJSON(tricks)
			return
		}

		pos := positions(svc.Tricks().All())
		w := newTable()
		fmt.Fprintln(w, "#\tNAME\tGENRE\tAMAZEMENT\tDIFFICULTY\tMINUTES\tAUDIENCE")
		for _, m := range tricks {
			minutes := "-"
			if m.PerformanceTime > 0 {
				minutes = fmt.Sprint(m.PerformanceTime)
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
				pos[m.ID], m.Name, m.Genre, stars(m.AmazementRating), stars(m.DifficultyRating), minutes, m.AudienceSize)
		}
		w.Flush()
		fmt.Printf("%d of %d tricks\n", len(tricks), svc.Tricks().Len())
	},
}

func stars(n int) string {
	n = min(max(n, 0), 5)
	return strings.Repeat("*", n) + strings.Repeat(".", 5-n)
}

func init() {
	trickAdd.register(tricksAddCmd.Flags())
	trickEdit.register(tricksEditCmd.Flags())

	f := tricksListCmd.Flags()
	f.StringVarP(&trickSearch, "search", "s", "", "Only tricks whose name contains this text")
	f.StringVar(&trickGenre, "genre", core.All, "Genre filter")
	f.StringVar(&trickAudience, "audience", core.All, "Audience size filter")
	f.IntVar(&trickMaxDiff, "max-difficulty", 0, "Only tricks at most this difficult")
	f.StringVar(&trickSort, "sort", "rating", "Sort by name, rating (amazement), difficulty, duration or added")
	f.StringVar(&trickOrder, "order", "", "asc or desc (default: A-Z for names, highest first otherwise)")
	f.BoolVar(&trickJSON, "json", false, "Output JSON")

	tricksCmd.AddCommand(tricksAddCmd, tricksEditCmd, tricksRmCmd, tricksListCmd)
	rootCmd.AddCommand(tricksCmd)
}
