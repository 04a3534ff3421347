// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: serial/serial_test.go
// Summary: Escape decoding, port output framing and the receive loop.

package serial

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/framegrace/texelcons/console"
)

func TestDecoder(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		want   []console.Code
	}{
		{"plain", []string{"ls\r"}, []console.Code{'l', 's', '\r'}},
		{"arrows", []string{"\x1b[A\x1b[B"}, []console.Code{console.CodeUp, console.CodeDown}},
		{"application mode", []string{"\x1bOA"}, []console.Code{console.CodeUp}},
		{"split sequence", []string{"a\x1b", "[", "A"}, []console.Code{'a', console.CodeUp}},
		{"other sequences dropped", []string{"\x1b[1;5C\x1b[Dx"}, []console.Code{'x'}},
		{"lone escape", []string{"\x1bq"}, []console.Code{'q'}},
		{"high bytes dropped", []string{"x\xe2\x86\x92y\xe3"}, []console.Code{'x', 'y'}},
		{"control bytes pass", []string{"\x15\x7f\x04"}, []console.Code{console.CodeKill, console.CodeDelete, console.CodeEOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var d Decoder
			var got []console.Code
			for _, c := range tt.chunks {
				got = d.Decode(got, []byte(c))
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("codes mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPort_OutputFraming(t *testing.T) {
	var out bytes.Buffer
	p := NewPort(nil, &out)
	p.PutChar('a')
	p.PutChar(console.Backspace)
	p.PutChar('b')
	assert.Empty(t, out.String(), "output is held until flush")
	p.Flush()
	assert.Equal(t, "a\b \bb", out.String())
}

type failingWriter struct{ calls int }

func (w *failingWriter) Write(p []byte) (int, error) {
	w.calls++
	return 0, io.ErrClosedPipe
}

func TestPort_WriteErrorStopsOutput(t *testing.T) {
	w := &failingWriter{}
	p := NewPort(nil, w)
	p.PutChar('a')
	p.Flush()
	p.PutChar('b')
	p.Flush()
	assert.Equal(t, 1, w.calls)
}

type batchRecorder struct {
	mu      sync.Mutex
	batches [][]console.Code
}

func (r *batchRecorder) Interrupt(src console.CodeSource) {
	var batch []console.Code
	for c, ok := src.Next(); ok; c, ok = src.Next() {
		batch = append(batch, c)
	}
	r.mu.Lock()
	r.batches = append(r.batches, batch)
	r.mu.Unlock()
}

func TestPort_ReceiveLoop(t *testing.T) {
	pr, pw := io.Pipe()
	p := NewPort(pr, nil)
	rec := &batchRecorder{}
	require.NoError(t, p.Enable(rec))

	_, err := pw.Write([]byte("hi\x1b[A"))
	require.NoError(t, err)
	pw.Close()

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("receive loop did not stop at EOF")
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.Len(t, rec.batches, 1)
	assert.Equal(t, []console.Code{'h', 'i', console.CodeUp}, rec.batches[0])
}

func TestPort_DrivesConsole(t *testing.T) {
	pr, pw := io.Pipe()
	var out bytes.Buffer
	p := NewPort(pr, &out)
	c := console.New(console.Options{
		Sinks:  []console.Sink{p},
		Halter: console.HaltFunc(func(string) {}),
	})
	require.NoError(t, p.Enable(c))

	go func() {
		pw.Write([]byte("cat\x7f\x7ft\r"))
		pw.Close()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	buf := make([]byte, 32)
	n, err := c.ReadLine(ctx, buf)
	require.NoError(t, err)
	assert.Equal(t, "ct\n", string(buf[:n]))
	<-p.Done()
	assert.Equal(t, "cat\b \b\b \bt\n", out.String())
}

func TestCRLFWriter(t *testing.T) {
	var out bytes.Buffer
	w := &crlfWriter{w: &out}
	n, err := w.Write([]byte("a\nb\n"))
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, "a\r\nb\r\n", out.String())
}

func TestOpenPTY(t *testing.T) {
	p, err := OpenPTY()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	defer p.Close()
	assert.NotEmpty(t, p.Name())
	assert.False(t, EchoEnabled(p.Slave()))

	rec := &batchRecorder{}
	require.NoError(t, p.Enable(rec))
	_, err = p.Slave().Write([]byte("x"))
	require.NoError(t, err)

	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		rec.mu.Lock()
		n := len(rec.batches)
		rec.mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	rec.mu.Lock()
	defer rec.mu.Unlock()
	require.NotEmpty(t, rec.batches)
	assert.Equal(t, console.Code('x'), rec.batches[0][0])
}
