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

package assert

import (
	"bufio"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// scanFor reads r byte by byte until the text appears. Prompts do not end
// with a newline, so the output cannot be read by lines. It returns what it
// read so far.
func scanFor(r io.Reader, text string) (string, error) {
	reader := bufio.NewReader(r)
	var seen strings.Builder

	for {
		b, err := reader.ReadByte()
		if err != nil {
			return seen.String(), err
		}

		seen.WriteByte(b)
		if strings.HasSuffix(seen.String(), text) {
			return seen.String(), nil
		}
	}
}

// WaitForPrompt waits until the prompt is written to stdout or the timeout
// elapses
func WaitForPrompt(stdout io.Reader, expectedPrompt string, timeout time.Duration) error {
	type result struct {
		seen string
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		seen, err := scanFor(stdout, expectedPrompt)
		resultCh <- result{seen: seen, err: err}
	}()

	select {
	case res := <-resultCh:
		if res.err == io.EOF {
			return errors.Errorf("expected prompt '%s' not found in output '%s'", expectedPrompt, res.seen)
		}
		if res.err != nil {
			return errors.Wrap(res.err, "reading stdout")
		}

		return nil
	case <-time.After(timeout):
		return errors.Errorf("timeout waiting for prompt '%s'", expectedPrompt)
	}
}

// RespondToPrompt waits for the prompt and writes the response to stdin
func RespondToPrompt(stdout io.Reader, stdin io.WriteCloser, expectedPrompt, response string, timeout time.Duration) error {
	if err := WaitForPrompt(stdout, expectedPrompt, timeout); err != nil {
		return err
	}

	if _, err := io.WriteString(stdin, response); err != nil {
		return errors.Wrap(err, "writing response to stdin")
	}

	return nil
}
