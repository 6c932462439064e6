/* Copyright 2025 Dnote Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package cmd

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/buildinfo"
)

// command is a subcommand of the server binary
type command struct {
	name  string
	short string
	run   func(args []string)
}

func commands() []command {
	return []command{
		{"start", "Start the server (use 'godnotes-server start --help' for flags)", startCmd},
		{"migrate", "Apply or roll back database migrations", migrateCmd},
		{"user", "Manage users (use 'godnotes-server user' for subcommands)", userCmd},
		{"version", "Print the version", func([]string) { versionCmd(os.Stdout) }},
	}
}

func printUsage(w io.Writer, cmds []command) {
	fmt.Fprint(w, `godnotes server - folders and markdown notes over a JSON API

Usage:
  godnotes-server [command] [flags]

Available commands:
`)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, c := range cmds {
		fmt.Fprintf(tw, "  %s\t%s\n", c.name, c.short)
	}
	tw.Flush()
}

func versionCmd(w io.Writer) {
	fmt.Fprintf(w, "godnotes-server-%s\n", buildinfo.Version)
}

func findCommand(cmds []command, name string) (command, bool) {
	for _, c := range cmds {
		if c.name == name {
			return c, true
		}
	}

	return command{}, false
}

// Execute is the main entry point for the CLI
func Execute() {
	cmds := commands()

	if len(os.Args) < 2 {
		printUsage(os.Stdout, cmds)
		return
	}

	name := os.Args[1]
	c, ok := findCommand(cmds, name)
	if !ok {
		fmt.Printf("Unknown command %s\n", name)
		printUsage(os.Stdout, cmds)
		os.Exit(1)
	}

	c.run(os.Args[2:])
}
