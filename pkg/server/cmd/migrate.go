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
	"os"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/database"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/server/log"
)

func migrateCmd(args []string) {
	fs := setupFlagSet("migrate", "godnotes-server migrate")

	rollback := fs.Int("rollback", 0, "Undo the given number of the latest migrations instead of applying them")
	dbf := addDBFlags(fs)

	fs.Parse(args)

	// setting up the app applies pending migrations
	a, cleanup := setupAppWithDB(fs, dbf)
	defer cleanup()

	if *rollback > 0 {
		n, err := database.Rollback(a.DB, *rollback)
		if err != nil {
			log.ErrorWrap(err, "rolling back migrations")
			os.Exit(1)
		}

		fmt.Printf("Rolled back %d migrations\n", n)
	}

	ids, err := database.AppliedMigrations(a.DB)
	if err != nil {
		log.ErrorWrap(err, "reading applied migrations")
		os.Exit(1)
	}

	fmt.Printf("Applied migrations: %d\n", len(ids))
	for _, id := range ids {
		fmt.Printf("  %s\n", id)
	}
}
