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
	"bufio"
	"errors"

	"github.com/spf13/cobra"

	"github.com/stulang/stulang/internal/entity"
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards",
	Short: "Review the cycle's vocabulary as flashcards",
	Long: `Flip through the active cycle's words card by card. Enter or 'f'
flips the card, 'n' moves forward, 'p' moves back, 'q' quits. Further
pages are fetched from the server as you approach the end of the deck.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		pageSize, _ := cmd.Flags().GetInt("page-size")
		deck, err := c.Flashcards.StartDeck(cmd.Context(), pageSize)
		if errors.Is(err, entity.ErrNoActiveCycle) {
			cmd.Println("No active cycle. Start one with 'stulang cycle start'.")
			return nil
		}
		if err != nil {
			return err
		}
		if deck.Total() == 0 {
			cmd.Println("The cycle has no words yet. Add some with 'stulang words add'.")
			return nil
		}

		reader := bufio.NewReader(cmd.InOrStdin())
		for {
			card, ok := deck.Card()
			if !ok {
				return nil
			}
			showCard(cmd, card, deck.Flipped())
			cmd.Printf("[%d/%d %.0f%%] flip/next/prev/quit > ", deck.Index()+1, deck.Total(), deck.Progress())

			input, err := readCommand(reader)
			if err != nil {
				return err
			}
			switch input {
			case "q", "quit":
				return nil
			case "n", "next":
				if err := deck.Next(cmd.Context()); err != nil {
					cmd.Printf("could not load more cards: %v\n", err)
				}
			case "p", "prev":
				deck.Prev()
			default:
				deck.Flip()
			}
		}
	},
}

func showCard(cmd *cobra.Command, card *entity.CycleWord, flipped bool) {
	word := card.Word
	if word == nil {
		return
	}
	cmd.Println()
	if !flipped {
		cmd.Printf("  %s", word.Word)
		if word.Pronunciation != "" {
			cmd.Printf("  /%s/", word.Pronunciation)
		}
		cmd.Println()
		return
	}
	cmd.Printf("  %s (%s, %s)\n", word.Word, word.PartOfSpeech, word.Level)
	cmd.Printf("  %s\n", word.Definition)
	if word.Example != "" {
		cmd.Printf("  e.g. %s\n", word.Example)
	}
	if word.Synonyms != "" {
		cmd.Printf("  synonyms: %s\n", word.Synonyms)
	}
}

func init() {
	rootCmd.AddCommand(flashcardsCmd)

	flashcardsCmd.Flags().Int("page-size", 20, "cards fetched per server page")
}
