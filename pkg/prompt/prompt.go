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

// Package prompt reads yes/no answers from a terminal
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// FormatQuestion appends the choices to a question. The capitalized choice
// is the answer assumed on empty input.
func FormatQuestion(question string, optimistic bool) string {
	choices := "(y/N)"
	if optimistic {
		choices = "(Y/n)"
	}

	return fmt.Sprintf("%s %s", question, choices)
}

// ReadYesNo reads one line from r. "y" and "yes" confirm in any case; an
// empty line confirms only in optimistic mode. A last line without a
// newline is accepted.
func ReadYesNo(r io.Reader, optimistic bool) (bool, error) {
	input, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return false, errors.Wrap(err, "reading answer")
	}

	switch strings.ToLower(strings.TrimSpace(input)) {
	case "y", "yes":
		return true, nil
	case "":
		return optimistic, nil
	default:
		return false, nil
	}
}

// Confirm writes the question to w and reads the answer from r
func Confirm(r io.Reader, w io.Writer, question string, optimistic bool) (bool, error) {
	if _, err := fmt.Fprint(w, FormatQuestion(question, optimistic)+" "); err != nil {
		return false, errors.Wrap(err, "writing question")
	}

	return ReadYesNo(r, optimistic)
}
