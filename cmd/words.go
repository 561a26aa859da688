/*
Copyright © 2025 StuLang Authors

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/repository"
	"github.com/stulang/stulang/pkg/queryexpr"
)

var wordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Manage the vocabulary of the active cycle",
}

var wordsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the words in the active cycle",
	Long: `List the active cycle's vocabulary. Filtering uses a small CEL
subset, for example:

  stulang words list --filter 'level == "b1" && word.contains("app")'
  stulang words list --order-by 'word desc' --page 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		q := &repository.ListCycleWordsQuery{}
		q.PageNo, _ = cmd.Flags().GetInt("page")
		q.PageSize, _ = cmd.Flags().GetInt("page-size")

		filter, _ := cmd.Flags().GetString("filter")
		orderBy, _ := cmd.Flags().GetString("order-by")
		if err := queryexpr.Bind(filter, orderBy, cycleWordSchema(q)); err != nil {
			return err
		}

		page, err := c.CycleWords.List(cmd.Context(), q)
		if errors.Is(err, entity.ErrNoActiveCycle) {
			cmd.Println("No active cycle. Start one with 'stulang cycle start'.")
			return nil
		}
		if err != nil {
			return err
		}

		if len(page.Items) == 0 {
			cmd.Println("The cycle has no matching words.")
			return nil
		}

		w := newTable(cmd)
		fmt.Fprintln(w, "ID\tWORD\tLEVEL\tTOPIC\tSTATUS\tDEFINITION")
		for _, item := range page.Items {
			word := item.Word
			if word == nil {
				continue
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				item.WordID, word.Word, word.Level, word.Topic, item.Status, truncate(word.Definition, 60))
		}
		flushTable(w)
		cmd.Printf("Page %d/%d, %d words total\n", q.PageNo, page.Pages, page.Total)
		return nil
	},
}

// cycleWordSchema maps filter and order expressions onto the listing
// query. The keys mirror what the server accepts, nothing more.
func cycleWordSchema(q *repository.ListCycleWordsQuery) queryexpr.Schema {
	return queryexpr.Schema{
		Fields: map[string]queryexpr.Field{
			"level": {Ops: map[queryexpr.Op]func(string) error{
				queryexpr.OpEQ: func(v string) error {
					if entity.ParseLevel(v) == "" {
						return fmt.Errorf("unknown level %q", v)
					}
					q.Level = v
					return nil
				},
			}},
			"topic": {Ops: map[queryexpr.Op]func(string) error{
				queryexpr.OpEQ: func(v string) error { q.Topic = v; return nil },
			}},
			"part_of_speech": {Ops: map[queryexpr.Op]func(string) error{
				queryexpr.OpEQ: func(v string) error { q.PartOfSpeech = v; return nil },
			}},
			"status": {Ops: map[queryexpr.Op]func(string) error{
				queryexpr.OpEQ: func(v string) error {
					switch entity.WordStatus(v) {
					case entity.StatusPending, entity.StatusLearned:
						q.Status = entity.WordStatus(v)
						return nil
					default:
						return fmt.Errorf("unknown status %q", v)
					}
				},
			}},
			"word": {Ops: map[queryexpr.Op]func(string) error{
				queryexpr.OpContains: func(v string) error { q.Search = v; return nil },
			}},
		},
		Order: queryexpr.OrderSchema{
			Keys: map[string]string{
				"id":    repository.SortByWordID,
				"word":  repository.SortByWord,
				"level": repository.SortByLevel,
			},
			Set: func(key string, desc bool) {
				q.Sort = repository.Sorting{By: key, Desc: desc}
			},
		},
	}
}

var wordsAddCmd = &cobra.Command{
	Use:   "add <word-id>...",
	Short: "Add dictionary words to the active cycle",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		for _, arg := range args {
			id, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid word id %q", arg)
			}
			item, err := c.CycleWords.Add(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("word %d: %w", id, err)
			}
			if item.Word != nil {
				cmd.Printf("Added %q to the cycle\n", item.Word.Word)
			} else {
				cmd.Printf("Added word %d to the cycle\n", id)
			}
		}
		return nil
	},
}

var wordsLearnedCmd = &cobra.Command{
	Use:   "mark-learned <word-id>",
	Short: "Mark a cycle word as learned without taking a test",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid word id %q", args[0])
		}
		if err := c.CycleWords.MarkLearned(cmd.Context(), id); err != nil {
			return err
		}
		cmd.Printf("Word %d marked as learned\n", id)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(wordsCmd)
	wordsCmd.AddCommand(wordsListCmd)
	wordsCmd.AddCommand(wordsAddCmd)
	wordsCmd.AddCommand(wordsLearnedCmd)

	wordsListCmd.Flags().String("filter", "", `filter expression, e.g. 'level == "b1"'`)
	wordsListCmd.Flags().String("order-by", "", `sort key with optional direction, e.g. 'word desc'`)
	wordsListCmd.Flags().Int("page", 1, "page number")
	wordsListCmd.Flags().Int("page-size", 20, "words per page")
}
