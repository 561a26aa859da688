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
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/stulang/stulang/internal/entity"
	"github.com/stulang/stulang/internal/usecase"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Take a multiple-choice test over the cycle's pending words",
	Long: `Run an interactive practice test. Each question shows a word from
the active cycle and four candidate definitions. Answer with the choice
number; 'b' goes back a question, 'q' abandons the session without
submitting. Results are scored and submitted as one batch once every
question is answered.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("count")
		session, err := c.Practice.Start(cmd.Context(), count)
		if err != nil {
			return err
		}
		if session.State() == usecase.PracticeEmpty {
			cmd.Println("Nothing to practice. Add words to your cycle first.")
			return nil
		}

		return runPractice(cmd, session)
	},
}

func runPractice(cmd *cobra.Command, session *usecase.PracticeSession) error {
	reader := bufio.NewReader(cmd.InOrStdin())
	cmd.Printf("Practice test: %d questions. Answer with the choice number.\n", session.Len())

	for session.State() == usecase.PracticeInProgress {
		q := session.Question()
		printQuestion(cmd, session, q)

		input, err := readCommand(reader)
		if err != nil {
			return err
		}

		switch input {
		case "q", "quit":
			cmd.Println("Session abandoned, nothing was submitted.")
			return nil
		case "b", "back":
			session.Prev()
			continue
		}

		choice, err := strconv.Atoi(input)
		if err != nil || choice < 1 || choice > len(q.Choices) {
			cmd.Printf("Please answer 1-%d, 'b' for back or 'q' to quit.\n", len(q.Choices))
			continue
		}
		if err := session.Select(choice - 1); err != nil {
			return err
		}

		if session.Answered() == session.Len() {
			summary, err := session.Submit(cmd.Context())
			if errors.Is(err, entity.ErrNoActiveCycle) {
				cmd.Println("The cycle ended while you were practicing; results were not recorded.")
				return nil
			}
			if err != nil {
				return err
			}
			printSummary(cmd, summary)
			return nil
		}
		session.Next()
	}
	return nil
}

func printQuestion(cmd *cobra.Command, session *usecase.PracticeSession, q *entity.Question) {
	cmd.Printf("\n[%d/%d] What does %q mean?", session.Current()+1, session.Len(), q.Word)
	if q.Pronunciation != "" {
		cmd.Printf(" /%s/", q.Pronunciation)
	}
	cmd.Println()
	for i, choice := range q.Choices {
		marker := " "
		if selected, ok := session.AnswerFor(session.Current()); ok && selected == i {
			marker = "*"
		}
		cmd.Printf("  %s %d) %s\n", marker, i+1, choice)
	}
	cmd.Print("> ")
}

func printSummary(cmd *cobra.Command, summary *usecase.PracticeSummary) {
	cmd.Printf("\nScore: %.0f%% (%d/%d correct)\n", summary.Score, summary.CorrectCount, len(summary.Results))
	if summary.Report != nil {
		cmd.Printf("Cycle progress: %d learned, %d still pending of %d words\n",
			summary.Report.LearnedWords, summary.Report.PendingWords, summary.Report.TotalWords)
	}
	if summary.WordsRemaining > 0 {
		cmd.Printf("%d words stay in the cycle for another round.\n", summary.WordsRemaining)
	} else {
		cmd.Println("Perfect round, every word was promoted.")
	}
}

func readCommand(reader *bufio.Reader) (string, error) {
	line, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	if err != nil && line == "" {
		return "q", nil
	}
	return strings.ToLower(strings.TrimSpace(line)), nil
}

func init() {
	rootCmd.AddCommand(practiceCmd)

	practiceCmd.Flags().IntP("count", "n", 10, "number of questions to request")
}
