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
	"fmt"
	"sort"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/stulang/stulang/internal/repository"
	"github.com/stulang/stulang/pkg/queryexpr"
)

var dictCmd = &cobra.Command{
	Use:   "dict",
	Short: "Browse the vocabulary dictionary",
}

var dictListCmd = &cobra.Command{
	Use:   "list",
	Short: "List dictionary entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		q := &repository.ListWordsQuery{}
		q.PageNo, _ = cmd.Flags().GetInt("page")
		q.PageSize, _ = cmd.Flags().GetInt("page-size")

		filter, _ := cmd.Flags().GetString("filter")
		orderBy, _ := cmd.Flags().GetString("order-by")
		if err := queryexpr.Bind(filter, orderBy, dictionarySchema(q)); err != nil {
			return err
		}

		page, err := c.Dictionary.List(cmd.Context(), q)
		if err != nil {
			return err
		}
		if len(page.Items) == 0 {
			cmd.Println("No matching words.")
			return nil
		}

		w := newTable(cmd)
		fmt.Fprintln(w, "ID\tWORD\tPOS\tLEVEL\tTOPIC\tDEFINITION")
		for _, word := range page.Items {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
				word.ID, word.Word, word.PartOfSpeech, word.Level, word.Topic, truncate(word.Definition, 60))
		}
		flushTable(w)
		cmd.Printf("Page %d/%d, %d words total\n", q.PageNo, page.Pages, page.Total)
		return nil
	},
}

func dictionarySchema(q *repository.ListWordsQuery) queryexpr.Schema {
	return queryexpr.Schema{
		Fields: map[string]queryexpr.Field{
			"level": {Ops: map[queryexpr.Op]func(string) error{
				queryexpr.OpEQ: func(v string) error { q.Level = v; return nil },
			}},
			"topic": {Ops: map[queryexpr.Op]func(string) error{
				queryexpr.OpEQ: func(v string) error { q.Topic = v; return nil },
			}},
			"part_of_speech": {Ops: map[queryexpr.Op]func(string) error{
				queryexpr.OpEQ: func(v string) error { q.PartOfSpeech = v; return nil },
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

var dictSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search words by keyword",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		words, err := c.Dictionary.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if len(words) == 0 {
			cmd.Printf("No words match %q.\n", args[0])
			return nil
		}

		w := newTable(cmd)
		fmt.Fprintln(w, "ID\tWORD\tLEVEL\tDEFINITION")
		for _, word := range words {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", word.ID, word.Word, word.Level, truncate(word.Definition, 70))
		}
		flushTable(w)
		return nil
	},
}

var dictShowCmd = &cobra.Command{
	Use:   "show <word-id>",
	Short: "Show one dictionary entry in full",
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
		word, err := c.Dictionary.Get(cmd.Context(), id)
		if err != nil {
			return err
		}

		cmd.Printf("%s (%s, %s)\n", word.Word, word.PartOfSpeech, word.Level)
		if word.Pronunciation != "" {
			cmd.Printf("  pronunciation: /%s/\n", word.Pronunciation)
		}
		cmd.Printf("  definition: %s\n", word.Definition)
		if word.Example != "" {
			cmd.Printf("  example: %s\n", word.Example)
		}
		if word.Synonyms != "" {
			cmd.Printf("  synonyms: %s\n", word.Synonyms)
		}
		if word.Topic != "" {
			cmd.Printf("  topic: %s\n", word.Topic)
		}
		return nil
	},
}

var dictTopicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List the available topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}
		topics, err := c.Dictionary.Topics(cmd.Context())
		if err != nil {
			return err
		}
		for _, topic := range topics {
			cmd.Println(topic)
		}
		return nil
	},
}

var dictLevelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the available levels",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}
		levels, err := c.Dictionary.Levels(cmd.Context())
		if err != nil {
			return err
		}
		for _, level := range levels {
			cmd.Println(level)
		}
		return nil
	},
}

var dictStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show vocabulary progress statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}
		stats, err := c.Dictionary.Statistics(cmd.Context())
		if err != nil {
			return err
		}

		cmd.Printf("Words: %d total, %d learned, %d remaining\n",
			stats.TotalCount, stats.LearnedCount, stats.RemainingCount)
		printDistribution(cmd, "By level", stats.LevelDistribution)
		printDistribution(cmd, "By topic", stats.TopicDistribution)
		return nil
	},
}

func printDistribution(cmd *cobra.Command, title string, dist map[string]int) {
	if len(dist) == 0 {
		return
	}
	keys := make([]string, 0, len(dist))
	for k := range dist {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmd.Printf("%s:\n", title)
	for _, k := range keys {
		cmd.Printf("  %-12s %d\n", k, dist[k])
	}
}

var dictLearnedCmd = &cobra.Command{
	Use:   "learned",
	Short: "List the words you have learned",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		p := repository.Pagination{}
		p.PageNo, _ = cmd.Flags().GetInt("page")
		p.PageSize, _ = cmd.Flags().GetInt("page-size")

		learned, err := c.Dictionary.LearnedWords(cmd.Context(), p)
		if err != nil {
			return err
		}
		if len(learned) == 0 {
			cmd.Println("Nothing learned yet. Keep practicing.")
			return nil
		}

		w := newTable(cmd)
		fmt.Fprintln(w, "ID\tWORD\tLEVEL\tLEARNED")
		for _, item := range learned {
			word := item.Word
			if word == nil {
				continue
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n",
				item.WordID, word.Word, word.Level, item.LearnedAt.Local().Format("2006-01-02 15:04"))
		}
		flushTable(w)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dictCmd)
	dictCmd.AddCommand(dictListCmd)
	dictCmd.AddCommand(dictSearchCmd)
	dictCmd.AddCommand(dictShowCmd)
	dictCmd.AddCommand(dictTopicsCmd)
	dictCmd.AddCommand(dictLevelsCmd)
	dictCmd.AddCommand(dictStatsCmd)
	dictCmd.AddCommand(dictLearnedCmd)

	dictListCmd.Flags().String("filter", "", `filter expression, e.g. 'topic == "travel"'`)
	dictListCmd.Flags().String("order-by", "", `sort key with optional direction, e.g. 'word desc'`)
	dictListCmd.Flags().Int("page", 1, "page number")
	dictListCmd.Flags().Int("page-size", 20, "words per page")

	dictLearnedCmd.Flags().Int("page", 1, "page number")
	dictLearnedCmd.Flags().Int("page-size", 20, "words per page")
}
