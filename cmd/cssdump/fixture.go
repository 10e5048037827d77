// This file parses the flat-text test fixture format: #data, #errors,
// #expected, #tree sections. A small hand-rolled line scanner, the same
// way dom/url.go parses URLs, rather than a templating or config-file
// package that has no real counterpart for this ad hoc shape.
package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/lukehoban/browser/dom"
)

// fixture is one test case as parsed out of a #data/#errors/#expected/
// #tree file. cssdump treats the whole file as a single fixture, since
// it's invoked with one test_file per run.
type fixture struct {
	data     string   // CSS source for #data
	errors   []string // expected css.Error names from #errors, in order
	expected []expectation
	byID     map[string]*dom.Node
}

// expectation is one "#id property: value" line from #expected.
type expectation struct {
	id       string
	property string
	value    string
}

const (
	sectionNone = iota
	sectionData
	sectionErrors
	sectionExpected
	sectionTree
)

func parseFixture(text string) (*fixture, error) {
	f := &fixture{byID: map[string]*dom.Node{}}
	section := sectionNone
	var dataLines []string
	var treeLines []string

	scanner := bufio.NewScanner(strings.NewReader(text))
	for scanner.Scan() {
		line := scanner.Text()
		switch line {
		case "#data":
			section = sectionData
			continue
		case "#errors":
			section = sectionErrors
			continue
		case "#expected":
			section = sectionExpected
			continue
		case "#tree":
			section = sectionTree
			continue
		}
		switch section {
		case sectionData:
			dataLines = append(dataLines, line)
		case sectionErrors:
			if strings.TrimSpace(line) != "" {
				f.errors = append(f.errors, strings.TrimSpace(line))
			}
		case sectionExpected:
			if strings.TrimSpace(line) == "" {
				continue
			}
			exp, err := parseExpectationLine(line)
			if err != nil {
				return nil, err
			}
			f.expected = append(f.expected, exp)
		case sectionTree:
			if strings.TrimSpace(line) != "" {
				treeLines = append(treeLines, line)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	f.data = strings.Join(dataLines, "\n")
	if _, err := parseTreeLines(treeLines, f.byID); err != nil {
		return nil, err
	}
	return f, nil
}

// parseExpectationLine reads "#id property: value", the format
// cssdump's own fixtures use to pin one node's computed value (see
// cssdump_test.go). The leading "#id" names a #tree node by its id
// attribute; property and value are compared against the node's
// ComputedStyle the same way a property declaration would set them.
func parseExpectationLine(line string) (expectation, error) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
	if len(fields) != 2 || !strings.HasPrefix(fields[0], "#") {
		return expectation{}, fmt.Errorf("bad #expected line: %q", line)
	}
	id := strings.TrimPrefix(fields[0], "#")
	rest := strings.TrimSpace(fields[1])
	colon := strings.Index(rest, ":")
	if colon < 0 {
		return expectation{}, fmt.Errorf("bad #expected line, missing ':': %q", line)
	}
	return expectation{
		id:       id,
		property: strings.TrimSpace(rest[:colon]),
		value:    strings.TrimSpace(rest[colon+1:]),
	}, nil
}

// parseTreeLines builds a dom.Node tree from an indented shorthand: two
// spaces per nesting level, then a tag name optionally followed by
// #id and any number of .class suffixes, e.g. "  div#main.note.big".
// The root is an implicit dom.NewDocument(); top-level lines (no
// leading spaces) are its children.
func parseTreeLines(lines []string, byID map[string]*dom.Node) (*dom.Node, error) {
	root := dom.NewDocument()
	stack := []*dom.Node{root}
	depths := []int{-1}

	for _, line := range lines {
		depth, rest := leadingIndent(line)
		node, err := parseTreeNode(rest)
		if err != nil {
			return nil, err
		}
		for len(depths) > 0 && depths[len(depths)-1] >= depth {
			stack = stack[:len(stack)-1]
			depths = depths[:len(depths)-1]
		}
		if len(stack) == 0 {
			return nil, fmt.Errorf("bad #tree indentation: %q", line)
		}
		parent := stack[len(stack)-1]
		parent.AppendChild(node)
		stack = append(stack, node)
		depths = append(depths, depth)
		if id := node.ID(); id != "" {
			byID[id] = node
		}
	}
	return root, nil
}

func leadingIndent(line string) (int, string) {
	n := 0
	for n < len(line) && line[n] == ' ' {
		n++
	}
	return n / 2, strings.TrimSpace(line[n:])
}

func parseTreeNode(text string) (*dom.Node, error) {
	if text == "" {
		return nil, fmt.Errorf("empty #tree line")
	}
	name := text
	rest := ""
	for i, c := range text {
		if c == '#' || c == '.' {
			name = text[:i]
			rest = text[i:]
			break
		}
	}
	if name == "" {
		return nil, fmt.Errorf("bad #tree node: %q", text)
	}
	n := dom.NewElement(name)
	var classes []string
	i := 0
	for i < len(rest) {
		j := i + 1
		for j < len(rest) && rest[j] != '#' && rest[j] != '.' {
			j++
		}
		token := rest[i+1 : j]
		switch rest[i] {
		case '#':
			n.SetAttribute("id", token)
		case '.':
			classes = append(classes, token)
		}
		i = j
	}
	if len(classes) > 0 {
		n.SetAttribute("class", strings.Join(classes, " "))
	}
	return n, nil
}

