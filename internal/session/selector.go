package session

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	defaultSelectorRowLength = 80
	defaultSelectorRowCount  = 5
)

// selector shows a numbered list of options in columns and reads a choice.
type selector struct {
	options []option
	output  []string
}

type option struct {
	id    string
	label string
}

// newSelector builds a selector over id -> label, ordered by label.
func newSelector(v map[string]string) *selector {
	s := &selector{}

	for id, label := range v {
		s.options = append(s.options, option{id: id, label: label})
	}
	slices.SortFunc(s.options, func(a, b option) int {
		if c := strings.Compare(a.label, b.label); c != 0 {
			return c
		}
		return strings.Compare(a.id, b.id)
	})
	s.build()

	return s
}

func (s *selector) Len() int {
	return len(s.options)
}

func (s *selector) build() {
	// Calculate column width
	colWidth := 1
	for _, v := range s.options {
		l := len(v.label) + 7 // Plus 7 for number and spacing (nn. <val>  )
		if l > colWidth {
			colWidth = l
		}
	}

	// Fill columns first, left to right, adding rows past the default when
	// the columns run out of room.
	numVals := len(s.options)
	numCols := max(defaultSelectorRowLength/colWidth, 1)
	numRows := (numVals + numCols - 1) / numCols
	if numRows < defaultSelectorRowCount {
		numRows = defaultSelectorRowCount
	}

	rows := make([]string, numRows)
	for count, v := range s.options {
		rows[count%numRows] += fmt.Sprintf("%2d. %-*s  ", count+1, colWidth-5, v.label)
	}
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}

	s.output = rows
}

func (s *selector) Prompt(ctx context.Context, c *console, prompt string) (string, error) {
	err := c.writeLine(prompt)
	if err != nil {
		return "", err
	}

	for _, str := range s.output {
		if len(str) > 0 {
			err = c.writeLine(str)
			if err != nil {
				return "", err
			}
		}
	}

	selection, err := c.Prompt(ctx, "Make your selection: ", WithValidator(
		func(str string) (bool, string) {
			i, err := strconv.Atoi(str)
			if err != nil || s.Select(i) == "" {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return "", err
	}

	i, err := strconv.Atoi(selection)
	if err != nil {
		return "", err
	}

	return s.Select(i), nil
}

// Select returns the id of the 1-based option i, or "" when out of range.
func (s *selector) Select(i int) string {
	if i < 1 || i > len(s.options) {
		return ""
	}
	return s.options[i-1].id
}
