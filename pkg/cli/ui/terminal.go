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

package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/cli/log"
	"github.com/1dailyfactschannel-cyber/godnotes-sub000/pkg/prompt"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// stdin is shared by every prompt so that input buffered by one read is
// seen by the next
var stdin = bufio.NewReader(os.Stdin)

// readLine reads one line without the line ending. A last line without a
// newline is accepted.
func readLine(r *bufio.Reader) (string, error) {
	input, err := r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return "", errors.Wrap(err, "reading stdin")
	}

	return strings.TrimRight(input, "\r\n"), nil
}

func stdinIsTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// PromptInput asks for a line of input and saves it to dest
func PromptInput(message string, dest *string) error {
	log.Askf(message, false)

	return readInto(dest)
}

// PromptPassword asks for a password and saves it to dest. The input is not
// echoed on a terminal. Piped input is read as a plain line.
func PromptPassword(message string, dest *string) error {
	log.Askf(message, true)

	if !stdinIsTerminal() {
		return readInto(dest)
	}

	b, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return errors.Wrap(err, "getting user input")
	}
	fmt.Fprintln(log.Output)
	*dest = string(b)

	return nil
}

// readInto reads a line from stdin into dest
func readInto(dest *string) error {
	input, err := readLine(stdin)
	if err != nil {
		return errors.Wrap(err, "getting user input")
	}
	*dest = input

	return nil
}

// Confirm asks a yes or no question. Optimistic questions default to yes.
func Confirm(question string, optimistic bool) (bool, error) {
	log.Askf(prompt.FormatQuestion(question, optimistic), false)

	ok, err := prompt.ReadYesNo(stdin, optimistic)
	if err != nil {
		return false, errors.Wrap(err, "getting user input")
	}

	return ok, nil
}

// ReadStdInput reads everything piped to stdin. Line endings are normalized
// and the trailing newline is dropped.
func ReadStdInput() (string, error) {
	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", errors.Wrap(err, "reading pipe")
	}

	s := strings.ReplaceAll(string(b), "\r\n", "\n")

	return strings.TrimSuffix(s, "\n"), nil
}

// HasPipedInput returns true if stdin is not a terminal
func HasPipedInput() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}

	return info.Mode()&os.ModeCharDevice == 0
}

// PromptCredentials asks for whichever of the email and the password is
// missing
func PromptCredentials(email, password *string) error {
	if *email == "" {
		if err := PromptInput("email", email); err != nil {
			return errors.Wrap(err, "getting email input")
		}
	}
	if *email == "" {
		return errors.New("Email is empty")
	}

	if *password == "" {
		if err := PromptPassword("password", password); err != nil {
			return errors.Wrap(err, "getting password input")
		}
	}
	if *password == "" {
		return errors.New("Password is empty")
	}

	return nil
}
