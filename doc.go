// Package deckhand is the composition root for the deckhand collection
// manager.
//
// It connects the core business logic (pkg/core) with the file adapter
// (pkg/adapters/fs) and exposes both through functional options.
//
// A collection holds three kinds of records: playing-card decks, wishlist
// items and magic tricks, plus two growing vocabularies (manufacturers and
// trick genres). The whole collection lives in one JSON or YAML file that
// is rewritten atomically after every successful change.
//
// Features:
//
//   - **Write-through CRUD**: every mutation is saved before it becomes visible.
//   - **Filter and sort**: stable ordering by name, price, rating or date.
//   - **Safe by default**: a corrupt file never stops the service, and `go run`
//     builds work on a sandboxed copy.
//   - **Live reload**: Service.Follow picks up edits made by other processes.
//
// Usage:
//
//	svc, err := deckhand.New("./collection.json", deckhand.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	if w := svc.LoadWarning(); w != nil {
//		logger.Warn("starting from defaults", "error", w)
//	}
//	card, err := svc.Cards().Create(ctx, deckhand.Card{Name: "Bicycle Rider Back", ...})
package deckhand
