package termio

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestExtractColor(t *testing.T) {
	cases := []struct {
		name  string
		reply []byte
		want  string
	}{
		{"belTerminated", []byte("\x1b]11;rgb:0000/0000/0000\x07"), "rgb:0000/0000/0000"},
		{"stTerminated", []byte("\x1b]11;rgb:1234/5678/9abc\x1b\\"), "rgb:1234/5678/9abc"},
		{"paddedBracket", []byte("\x1b] 11;rgb:ffff/8000/0000\x07"), "rgb:ffff/8000/0000"},
		{"hexPayload", []byte("\x1b]11;#ff8000\x07"), "#ff8000"},
	}
	for _, tc := range cases {
		got, err := ExtractColor(tc.reply)
		if err != nil {
			t.Fatalf("%s: ExtractColor(%q): %v", tc.name, tc.reply, err)
		}
		if got != tc.want {
			t.Fatalf("%s: ExtractColor(%q) = %q, want %q", tc.name, tc.reply, got, tc.want)
		}
	}
}

func TestExtractColorRejectsNonReplies(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte(""),
		[]byte("garbage data"),
		// OSC 10 is the foreground query; not ours.
		[]byte("\x1b]10;rgb:0000/0000/0000\x07"),
		{0xff, 0xfe, 0xfd},
	}
	for _, reply := range cases {
		if got, err := ExtractColor(reply); err == nil {
			t.Fatalf("ExtractColor(%q) = %q, want error", reply, got)
		}
	}
}

func TestHasTerminator(t *testing.T) {
	cases := []struct {
		buf  []byte
		want bool
	}{
		{[]byte("\x1b]11;rgb:0/0/0\x07"), true},
		{[]byte("\x1b]11;rgb:0/0/0\x1b\\"), true},
		{[]byte("\x1b]11;rgb:0/0/0"), false},
		{[]byte("\x1b]11;rgb:0/0/0\x1b"), false},
		{nil, false},
	}
	for _, tc := range cases {
		if got := hasTerminator(tc.buf); got != tc.want {
			t.Fatalf("hasTerminator(%q) = %v, want %v", tc.buf, got, tc.want)
		}
	}
}

func TestReceiveReplyReadsTerminatedReply(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	reply := "\x1b]11;rgb:ffff/8000/0000\x07"
	if _, err := w.WriteString(reply); err != nil {
		t.Fatalf("write: %v", err)
	}

	got, err := receiveReply(int(r.Fd()), time.Second)
	if err != nil {
		t.Fatalf("receiveReply: %v", err)
	}
	if string(got) != reply {
		t.Fatalf("receiveReply = %q, want %q", got, reply)
	}
}

func TestReceiveReplyAccumulatesChunks(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	go func() {
		w.WriteString("\x1b]11;rgb:0000/")
		time.Sleep(20 * time.Millisecond)
		w.WriteString("0000/0000\x1b\\")
	}()

	got, err := receiveReply(int(r.Fd()), time.Second)
	if err != nil {
		t.Fatalf("receiveReply: %v", err)
	}
	payload, err := ExtractColor(got)
	if err != nil {
		t.Fatalf("ExtractColor(%q): %v", got, err)
	}
	if payload != "rgb:0000/0000/0000" {
		t.Fatalf("payload = %q", payload)
	}
}

func TestReceiveReplyTimesOut(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	deadline := 50 * time.Millisecond
	start := time.Now()
	_, err = receiveReply(int(r.Fd()), deadline)
	elapsed := time.Since(start)
	if !errors.Is(err, ErrTimeout) {
		t.Fatalf("want ErrTimeout, got %v", err)
	}
	if elapsed < deadline {
		t.Fatalf("returned before the deadline: %v", elapsed)
	}
	if elapsed > deadline+time.Second {
		t.Fatalf("overshot the deadline by too much: %v", elapsed)
	}
}

func TestReceiveReplyStopsAtEOF(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	defer r.Close()

	w.WriteString("\x1b]11;rgb:ff")
	w.Close()

	got, err := receiveReply(int(r.Fd()), time.Second)
	if err != nil {
		t.Fatalf("receiveReply: %v", err)
	}
	if string(got) != "\x1b]11;rgb:ff" {
		t.Fatalf("receiveReply = %q", got)
	}
}
