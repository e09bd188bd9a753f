// Command jassindex builds, inspects, and queries the frozen TIS index
// archive from the command line.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/schollz/jasstension/internal/corpus"
	"github.com/schollz/jasstension/internal/rank"
	"github.com/schollz/jasstension/internal/tis"
	"github.com/schollz/jasstension/internal/tisindex"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		log.Fatal(err)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jassindex",
		Short: "Build, inspect, and query a tonal tension chord index",
	}
	root.AddCommand(newBuildCmd(), newInspectCmd(), newSuggestCmd())
	return root
}

func newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build <corpus.json> <index.bin>",
		Short: "Build an index archive from a corpus JSON file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			chordsToBits, err := corpus.LoadChordsChroma(f)
			if err != nil {
				return err
			}

			idx, err := tisindex.Build(chordsToBits, tis.DefaultWeights, args[0])
			if err != nil {
				return err
			}
			if err := idx.SaveFile(args[1]); err != nil {
				return err
			}
			fmt.Printf("built %d rows from %d chords -> %s\n", idx.Rows(), idx.Meta.NumChords, args[1])
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <index.bin>",
		Short: "Print index metadata and row count",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := tisindex.LoadFile(args[0])
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Meta tisindex.Meta `json:"meta"`
				Rows int           `json:"rows"`
			}{idx.Meta, idx.Rows()})
		},
	}
}

func newSuggestCmd() *cobra.Command {
	var (
		key       string
		top       int
		goal      string
		normalize bool
		flats     bool
		progression []string
	)
	cmd := &cobra.Command{
		Use:   "suggest <index.bin> <chord>",
		Short: "Rank suggested next chords after <chord>",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idx, err := tisindex.LoadFile(args[0])
			if err != nil {
				return err
			}
			res, err := rank.Suggest(idx, rank.Query{
				Chord:       args[1],
				Progression: progression,
				Key:         key,
				Top:         top,
				Goal:        goal,
				Normalize:   normalize,
				Flats:       flats,
			})
			if err != nil {
				return err
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(res)
		},
	}
	cmd.Flags().StringVar(&key, "key", "C", "key the suggestion is relative to")
	cmd.Flags().IntVar(&top, "top", 10, "number of candidates to return")
	cmd.Flags().StringVar(&goal, "goal", "resolve", `"resolve", "build", or a numeric tension target`)
	cmd.Flags().BoolVar(&normalize, "normalize", false, "min-max normalize each indicator before weighting")
	cmd.Flags().BoolVar(&flats, "flats", false, "spell candidate notes with flats instead of sharps")
	cmd.Flags().StringSliceVar(&progression, "progression", nil, "preceding chords, last one must equal <chord>")
	return cmd
}
