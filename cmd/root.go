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
	"os"

	"github.com/spf13/cobra"

	"github.com/stulang/stulang/internal/app"
	"github.com/stulang/stulang/internal/entity"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "stulang",
	Short: "Vocabulary study cycles from your terminal",
	Long: `stulang is a command line client for the StuLang language
learning service. Log in, start a time-boxed study cycle, fill it with
vocabulary, then drill it with practice tests and flashcards.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

var container *app.Container

// runtime builds the dependency container once per invocation.
func runtime() (*app.Container, error) {
	if container != nil {
		return container, nil
	}
	c, err := app.Initialize()
	if err != nil {
		return nil, err
	}
	container = c
	return container, nil
}

// authedRuntime is runtime plus a session check, so commands that need a
// token fail with a hint instead of a bare 401.
func authedRuntime() (*app.Container, error) {
	c, err := runtime()
	if err != nil {
		return nil, err
	}
	if err := c.Session.Require(); err != nil {
		if errors.Is(err, entity.ErrUnauthenticated) {
			return nil, errors.New("not logged in, run 'stulang login' first")
		}
		return nil, err
	}
	return c, nil
}
