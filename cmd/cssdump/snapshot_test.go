// A small snapshot suite over the #data/#tree dump format itself:
// rather than re-asserting individual property values (cssdump_test.go
// already does that), this pins the exact diagnostic text cssdump
// would print for a fixture, catching accidental wording/format
// drift in evaluateFixture's messages. Grounded on CWBudde-go-dws's
// fixture_test.go, the pack's only go-snaps consumer.
package main

import (
	"fmt"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/lukehoban/browser/css"
	"github.com/stretchr/testify/require"
)

func TestCascadeDumpSnapshot(t *testing.T) {
	text := `
#data
ul { display: block; }
li { display: list-item; color: black; }
li.flagged { color: red; }
#tree
ul
  li#first
  li#second.flagged
#expected
#first display: list-item
#first color: black
#second color: red
`
	result, err := evaluateFixture(text, nil, css.OriginAuthor)
	require.NoError(t, err)
	require.True(t, result.pass, "fixture should pass: %v", result.messages)

	snaps.MatchSnapshot(t, "cascade_dump_messages", fmt.Sprintf("%v", result.messages))
}

func TestCascadeDumpSnapshotOnFailure(t *testing.T) {
	text := `
#data
li.flagged { color: red; }
#tree
li#second.flagged
#expected
#second color: blue
`
	result, err := evaluateFixture(text, nil, css.OriginAuthor)
	require.NoError(t, err)
	require.False(t, result.pass)
	require.Len(t, result.messages, 1)

	snaps.MatchSnapshot(t, "cascade_dump_mismatch_message", result.messages[0])
}
