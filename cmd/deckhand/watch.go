package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/aretw0/deckhand"
	"github.com/aretw0/deckhand/pkg/adapters/fs"
	"github.com/aretw0/deckhand/pkg/adapters/lifecycle"
	"github.com/aretw0/deckhand/pkg/core"
)

var watchNoReload bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the collection file and report changes made by other programs",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		svc := openService(cfg)
		fmt.Println("Watching for changes (Ctrl+C to stop)...")

		if watchNoReload {
			events, err := svc.Watch(ctx)
			if err != nil {
				fatal("Failed to watch collection", err)
			}
			src := lifecycle.NewSource(events, storePath(svc))
			if err := src.Start(ctx); err != nil {
				fatal("Failed to start event source", err)
			}
			for e := range src.Events() {
				fmt.Println(e)
			}
			return
		}

		err := svc.Follow(ctx, func(e core.Event) {
			if w := svc.LoadWarning(); w != nil && e.Type != core.EventDelete {
				fmt.Fprintf(os.Stderr, "%s change ignored, keeping the collection in memory: %v\n",
					color.YellowString("warning:"), w)
				return
			}
			fmt.Printf("[%s] %s: %d decks, %d wishlist items, %d tricks\n",
				time.Unix(e.Timestamp, 0).Format("15:04:05"), e.Type,
				svc.Cards().Len(), svc.Wishlist().Len(), svc.Tricks().Len())
		})
		if err != nil {
			fatal("Failed to watch collection", err)
		}
	},
}

// storePath is the file the service actually opened, which dev safety may
// have moved away from the requested one.
func storePath(svc *deckhand.Service) string {
	st := svc.State().(core.ServiceState)
	if rs, ok := st.Repository.(fs.RepositoryState); ok {
		return rs.Path
	}
	return ""
}

func init() {
	watchCmd.Flags().BoolVar(&watchNoReload, "no-reload", false, "Only report changes, do not reload the collection")
	rootCmd.AddCommand(watchCmd)
}
