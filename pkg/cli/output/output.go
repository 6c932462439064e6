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

// Package output provides functions to print information on the terminal
// in a consistent manner
package output

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/items"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/utils/diff"
	"github.com/disiqueira/gotree/v3"
)

const timeLayout = "Jan 2, 2006 3:04pm (MST)"

func formatMillis(ms int64) string {
	return time.UnixMilli(ms).Format(timeLayout)
}

// ItemInfo prints the metadata of an item
func ItemInfo(list []items.Item, it items.Item) {
	log.Infof("path: %s\n", items.Path(list, it.ID))
	log.Infof("id: %s\n", it.ID)
	if it.CreatedAt != 0 {
		log.Infof("created at: %s\n", formatMillis(it.CreatedAt))
	}
	if it.UpdatedAt != 0 {
		log.Infof("updated at: %s\n", formatMillis(it.UpdatedAt))
	}
	if len(it.Tags) > 0 {
		log.Infof("tags: %s\n", strings.Join(it.Tags, ", "))
	}
	if flags := flagNames(it); len(flags) > 0 {
		log.Infof("flags: %s\n", strings.Join(flags, ", "))
	}
}

func flagNames(it items.Item) []string {
	var ret []string
	if it.IsPinned {
		ret = append(ret, "pinned")
	}
	if it.IsFavorite {
		ret = append(ret, "favorite")
	}
	if it.IsPublic {
		ret = append(ret, "public")
	}
	if it.IsProtected {
		ret = append(ret, "protected")
	}
	if items.IsTemporaryID(it.ID) {
		ret = append(ret, "not synced")
	}

	return ret
}

// Content prints the body of a note
func Content(w io.Writer, content string) {
	fmt.Fprintf(w, "\n------------------------content------------------------\n")
	fmt.Fprintf(w, "%s", content)
	fmt.Fprintf(w, "\n-------------------------------------------------------\n")
}

func label(it items.Item) string {
	l := it.Name
	if it.IsFolder() {
		l += items.PathSeparator
	}
	if it.IsPinned {
		l += " *"
	}

	return fmt.Sprintf("%s %s", l, log.ColorGray.Sprintf("(%s)", it.ID))
}

func addChildren(node gotree.Tree, list []items.Item, parentID, order string, seen map[string]bool) {
	for _, it := range items.SortSiblings(items.Children(list, parentID), order) {
		if seen[it.ID] {
			continue
		}
		seen[it.ID] = true

		child := node.Add(label(it))
		if it.IsFolder() {
			addChildren(child, list, it.ID, order, seen)
		}
	}
}

// Tree renders the items as a tree under a root with the given title
func Tree(title string, list []items.Item, order string) string {
	root := gotree.New(title)
	addChildren(root, list, "", order, map[string]bool{})

	return root.Print()
}

// SearchResults prints the matches of a search
func SearchResults(list []items.Item, results []items.Item) {
	for _, it := range results {
		path := items.Path(list, it.ID)
		if path == "" {
			path = it.Name
		}

		log.Plainf("%s %s\n", path, log.ColorGray.Sprintf("(%s)", it.ID))
	}
}

// Diff prints a line diff, marking removed lines with '-' and added lines
// with '+'
func Diff(w io.Writer, lines []diff.Line) {
	for _, l := range lines {
		switch l.Op {
		case diff.Insert:
			fmt.Fprintln(w, log.ColorGreen.Sprintf("+ %s", l.Text))
		case diff.Delete:
			fmt.Fprintln(w, log.ColorRed.Sprintf("- %s", l.Text))
		default:
			fmt.Fprintf(w, "  %s\n", l.Text)
		}
	}
}
