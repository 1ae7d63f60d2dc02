package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/NivBraz/wordtally/internal/app"
	"github.com/NivBraz/wordtally/internal/config"
	"github.com/NivBraz/wordtally/internal/models"
	"github.com/NivBraz/wordtally/pkg/parser"
	"github.com/NivBraz/wordtally/pkg/words"
)

func newCountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "count [sentences...]",
		Short: "Tally sentences given as arguments or read from stdin",
		Example: `  wordtally count "cat;Cat;dog" --word cat --ignore-case
  printf 'cat;dog\nbird\n' | wordtally count --top 2`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []words.Option
			if locale, _ := cmd.Flags().GetString("locale"); locale != "" {
				tag, err := language.Parse(locale)
				if err != nil {
					return fmt.Errorf("invalid locale %q: %w", locale, err)
				}
				opts = append(opts, words.WithLocale(tag))
			}
			counter := words.NewCounter(opts...)

			if len(args) > 0 {
				for _, sentence := range args {
					counter.AddSentence(sentence)
				}
			} else {
				content, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("error reading stdin: %w", err)
				}
				for _, sentence := range parser.New().ParseSentences(content) {
					counter.AddSentence(sentence)
				}
			}

			queries, _ := cmd.Flags().GetStringSlice("word")
			ignoreCase, _ := cmd.Flags().GetBool("ignore-case")
			top, _ := cmd.Flags().GetInt("top")

			result := &models.Result{}
			if len(queries) > 0 {
				for _, q := range queries {
					result.Queries = append(result.Queries, models.QueryResult{
						Word:          q,
						CaseSensitive: !ignoreCase,
						Count:         counter.WordCount(q, !ignoreCase),
					})
				}
			} else {
				for _, e := range counter.WordsMap().Entries() {
					result.Words = append(result.Words, models.WordCount{Word: e.Word, Count: e.Count})
				}
				if top > 0 {
					for _, e := range counter.Top(top) {
						result.TopWords = append(result.TopWords, models.WordCount{Word: e.Word, Count: e.Count})
					}
				}
			}

			format := config.FormatText
			if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
				format = config.FormatJSON
			}
			return app.WriteResult(cmd.OutOrStdout(), result, format, false)
		},
	}

	cmd.Flags().StringSliceP("word", "w", nil, "Report the count of this word (repeatable)")
	cmd.Flags().BoolP("ignore-case", "i", false, "Sum counts across every casing of the word")
	cmd.Flags().Int("top", 0, "Also list the N most frequent words")
	cmd.Flags().String("locale", "", "BCP 47 language used for case folding with --ignore-case")

	return cmd
}
