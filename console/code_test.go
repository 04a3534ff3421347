package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecode(t *testing.T) {
	tests := []struct {
		code Code
		want Event
	}{
		{'a', Event{Kind: EventInsert, Char: 'a'}},
		{'\r', Event{Kind: EventInsert, Char: '\n'}},
		{CodeEOF, Event{Kind: EventInsert, Char: 4}},
		{CodeBackspace, Event{Kind: EventErase}},
		{CodeDelete, Event{Kind: EventErase}},
		{CodeKill, Event{Kind: EventKill}},
		{CodeProcDump, Event{Kind: EventProcDump}},
		{CodeUp, Event{Kind: EventOlder}},
		{CodeDown, Event{Kind: EventNewer}},
		{0, Event{Kind: EventIgnore}},
		{0x1234, Event{Kind: EventIgnore}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Decode(tt.code), "code %#x", int(tt.code))
	}
}

func TestCodeSources(t *testing.T) {
	src := Typed("hi")
	c, ok := src.Next()
	assert.True(t, ok)
	assert.Equal(t, Code('h'), c)
	src.Next()
	_, ok = src.Next()
	assert.False(t, ok)
}
