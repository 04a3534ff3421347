package keyboard

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelcons/console"
)

func TestTranslate(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want console.Code
		ok   bool
	}{
		{"rune", tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), 'q', true},
		{"enter", tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), '\r', true},
		{"tab", tcell.NewEventKey(tcell.KeyTab, 0, tcell.ModNone), '\t', true},
		{"up", tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), console.CodeUp, true},
		{"down", tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), console.CodeDown, true},
		{"backspace", tcell.NewEventKey(tcell.KeyBackspace, 0, tcell.ModNone), console.CodeBackspace, true},
		{"delete", tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), console.CodeDelete, true},
		{"ctrl-u", tcell.NewEventKey(tcell.KeyCtrlU, 0, tcell.ModCtrl), console.CodeKill, true},
		{"ctrl-p", tcell.NewEventKey(tcell.KeyCtrlP, 0, tcell.ModCtrl), console.CodeProcDump, true},
		{"ctrl-d", tcell.NewEventKey(tcell.KeyCtrlD, 0, tcell.ModCtrl), console.CodeEOF, true},
		{"ctrl-h", tcell.NewEventKey(tcell.KeyCtrlH, 0, tcell.ModCtrl), console.CodeBackspace, true},
		{"ctrl letter key", tcell.NewEventKey(tcell.Key('U'), 'u', tcell.ModCtrl), console.CodeKill, true},
		{"left", tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), 0, false},
		{"unicode", tcell.NewEventKey(tcell.KeyRune, 'é', tcell.ModNone), 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Translate(tt.ev)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

type recorder struct {
	batches [][]console.Code
}

func (r *recorder) Interrupt(src console.CodeSource) {
	var batch []console.Code
	for c, ok := src.Next(); ok; c, ok = src.Next() {
		batch = append(batch, c)
	}
	r.batches = append(r.batches, batch)
}

func TestKeyboardDeliversAfterEnable(t *testing.T) {
	k := New()
	k.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'a', tcell.ModNone))

	rec := &recorder{}
	require.NoError(t, k.Enable(rec))
	assert.Empty(t, rec.batches, "input before enable is dropped")

	k.HandleKey(tcell.NewEventKey(tcell.KeyRune, 'b', tcell.ModNone))
	k.HandleKey(tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone))
	k.HandlePaste([]byte("ls\n"))

	require.Len(t, rec.batches, 2)
	assert.Equal(t, []console.Code{'b'}, rec.batches[0])
	assert.Equal(t, []console.Code{'l', 's', '\n'}, rec.batches[1])
}
