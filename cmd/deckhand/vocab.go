package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/deckhand/pkg/core"
)

var vocabCmd = &cobra.Command{
	Use:   "vocab",
	Short: "Manage the manufacturer and genre lists",
}

var vocabListCmd = &cobra.Command{
	Use:   "list <manufacturers|genres>",
	Short: "Print a vocabulary, one entry per line",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		kind, err := core.ParseVocabularyKind(args[0])
		if err != nil {
			fatal("Invalid vocabulary", err)
		}
		for _, v := range openService(cfg).Vocabulary(kind) {
			fmt.Println(v)
		}
	},
}

var vocabAddCmd = &cobra.Command{
	Use:   "add <manufacturers|genres> <value>",
	Short: "Add an entry to a vocabulary",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		kind, err := core.ParseVocabularyKind(args[0])
		if err != nil {
			fatal("Invalid vocabulary", err)
		}
		added, err := openService(cfg).AddVocabulary(context.Background(), kind, args[1])
		if err != nil {
			fatal("Failed to add entry", err)
		}
		if !added {
			fmt.Printf("%q is already listed\n", args[1])
			return
		}
		fmt.Printf("Added %q to %s\n", args[1], kind)
	},
}

func init() {
	vocabCmd.AddCommand(vocabListCmd, vocabAddCmd)
	rootCmd.AddCommand(vocabCmd)
}
