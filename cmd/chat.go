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
	"strings"

	"github.com/spf13/cobra"

	"github.com/stulang/stulang/internal/repository"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Practice conversation with the AI assistant",
	Long: `Send a message to the conversation assistant. With a message
argument one exchange is made; without arguments an interactive session
starts, ended with 'q' or end of input.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		if len(args) > 0 {
			reply, err := c.Chat.Send(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			cmd.Println(reply)
			return nil
		}

		reader := bufio.NewReader(cmd.InOrStdin())
		cmd.Println("Chat session started, 'q' to leave.")
		for {
			cmd.Print("you> ")
			raw, err := reader.ReadString('\n')
			if err != nil && raw == "" {
				return nil
			}
			line := strings.TrimSpace(raw)
			if line == "" {
				continue
			}
			if line == "q" || line == "quit" {
				return nil
			}
			reply, err := c.Chat.Send(cmd.Context(), line)
			if err != nil {
				return err
			}
			cmd.Printf("tutor> %s\n", reply)
		}
	},
}

var chatHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show past conversation exchanges",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := authedRuntime()
		if err != nil {
			return err
		}

		p := repository.Pagination{}
		p.PageNo, _ = cmd.Flags().GetInt("page")
		p.PageSize, _ = cmd.Flags().GetInt("page-size")

		history, err := c.Chat.History(cmd.Context(), p)
		if err != nil {
			return err
		}
		if len(history) == 0 {
			cmd.Println("No conversations yet.")
			return nil
		}

		for _, exchange := range history {
			cmd.Printf("[%s]\n", exchange.At.Local().Format("2006-01-02 15:04"))
			cmd.Printf("you>   %s\n", exchange.Message)
			cmd.Printf("tutor> %s\n\n", exchange.Response)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
	chatCmd.AddCommand(chatHistoryCmd)

	chatHistoryCmd.Flags().Int("page", 1, "page number")
	chatHistoryCmd.Flags().Int("page-size", 20, "exchanges per page")
}
