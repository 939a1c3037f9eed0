// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package confirm asks the operator to approve destructive actions.
package confirm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Affirmative is the only answer accepted as a yes
const Affirmative = "y"

// 🚦 Gate returns the operator's decision for a described action
type Gate interface {
	Confirm(ctx context.Context, description string) bool
}

// GateFunc adapts a function to Gate
type GateFunc func(ctx context.Context, description string) bool

// Confirm implements Gate.Confirm
func (f GateFunc) Confirm(ctx context.Context, description string) bool {
	return f(ctx, description)
}

// IsAffirmative reports whether a raw answer counts as a yes
func IsAffirmative(answer string) bool {
	return strings.ToLower(strings.TrimSpace(answer)) == Affirmative
}

// 🖥️ Console prompts on out and reads one line from in per question
// An interrupted prompt leaves its read goroutine blocked on in until in closes.
type Console struct {
	out    io.Writer
	reader *bufio.Reader
}

// NewConsole creates a console gate
func NewConsole(in io.Reader, out io.Writer) *Console {
	return &Console{
		out:    out,
		reader: bufio.NewReader(in),
	}
}

type answer struct {
	line string
	err  error
}

// Confirm implements Gate.Confirm.
// It blocks until a line arrives, the input ends, or ctx is done; only a "y"
// line is a yes.
func (c *Console) Confirm(ctx context.Context, description string) bool {
	logger := zerolog.Ctx(ctx)

	if ctx.Err() != nil {
		logger.Debug().Str("action", description).Msg("prompt skipped, context done")
		return false
	}

	fmt.Fprintf(c.out, "\nAbout to: %s\n", description)
	fmt.Fprint(c.out, "Continue? [y/N]: ")

	ch := make(chan answer, 1)
	go func() {
		line, err := c.reader.ReadString('\n')
		ch <- answer{line: line, err: err}
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(c.out)
		logger.Debug().Str("action", description).Msg("prompt interrupted")
		return false
	case a := <-ch:
		// a final line without newline still counts as an answer
		if a.err != nil && a.line == "" {
			fmt.Fprintln(c.out)
			logger.Debug().Err(a.err).Str("action", description).Msg("no answer")
			return false
		}
		ok := IsAffirmative(a.line)
		logger.Debug().Str("action", description).Bool("confirmed", ok).Msg("prompt answered")
		return ok
	}
}

// 📜 Scripted replays a fixed list of answers and records every question.
// Once the answers run out every further question is declined.
type Scripted struct {
	mu      sync.Mutex
	answers []bool
	asked   []string
}

// NewScripted creates a scripted gate
func NewScripted(answers ...bool) *Scripted {
	return &Scripted{answers: answers}
}

// Confirm implements Gate.Confirm
func (s *Scripted) Confirm(ctx context.Context, description string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := len(s.asked)
	s.asked = append(s.asked, description)
	if idx >= len(s.answers) {
		return false
	}
	return s.answers[idx]
}

// Asked returns the descriptions in the order they were asked
func (s *Scripted) Asked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.asked...)
}
