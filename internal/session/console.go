package session

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrTooManyTries is returned by Prompt when WithMaxTries is exhausted.
var ErrTooManyTries = errors.New("too many tries")

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// console reads lines from the player on its own goroutine so that a
// pending read never blocks context cancellation.
type console struct {
	w     io.Writer
	lines chan string
	errs  chan error
	stop  chan struct{}
}

func newConsole(rw io.ReadWriter) *console {
	c := &console{
		w:     rw,
		lines: make(chan string),
		errs:  make(chan error, 1),
		stop:  make(chan struct{}),
	}
	go c.read(rw)
	return c
}

func (c *console) read(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		select {
		case c.lines <- scanner.Text():
		case <-c.stop:
			return
		}
	}

	err := scanner.Err()
	if err == nil {
		err = io.EOF
	}
	c.errs <- err
}

func (c *console) close() {
	close(c.stop)
}

func (c *console) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-c.lines:
		return strings.TrimRight(l, "\r"), nil
	case err := <-c.errs:
		// Keep the error for any later read.
		c.errs <- err
		return "", err
	}
}

func (c *console) write(s string) error {
	_, err := io.WriteString(c.w, s)
	return err
}

func (c *console) writeLine(s string) error {
	return c.write(s + "\n")
}

func (c *console) Prompt(ctx context.Context, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		err := c.write(prompt)
		if err != nil {
			return "", err
		}

		input, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}
		input = strings.TrimSpace(input)

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				if err := c.write(msg); err != nil {
					return "", err
				}

				tries++
				if config.tries > 0 && config.tries == tries {
					return "", ErrTooManyTries
				}

				continue
			}
		}

		return input, nil
	}
}

// PromptChoice asks until the answer's first letter matches one of choices
// and returns that letter in lower case.
func (c *console) PromptChoice(ctx context.Context, prompt string, choices ...string) (string, error) {
	match := func(str string) string {
		str = strings.ToLower(str)
		for _, ch := range choices {
			if str != "" && strings.HasPrefix(strings.ToLower(ch), str[:1]) {
				return strings.ToLower(ch[:1])
			}
		}
		return ""
	}

	str, err := c.Prompt(ctx, prompt, WithValidator(
		func(str string) (bool, string) {
			if match(str) == "" {
				return false, fmt.Sprintf("enter one of: %s\n", strings.Join(choices, ", "))
			}
			return true, ""
		},
	))
	if err != nil {
		return "", err
	}

	return match(str), nil
}
