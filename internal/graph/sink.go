package graph

import (
	"bufio"
	"errors"
	"io"
	"os"
)

// Sink is where a rendered document ends up.
type Sink interface {
	WriteLines(lines []string) error
}

// WriterSink writes one line per `\n` terminated line to W.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) WriteLines(lines []string) error {
	buf := bufio.NewWriter(s.W)
	for _, line := range lines {
		_, err := buf.WriteString(line)
		if err != nil {
			return err
		}
		err = buf.WriteByte('\n')
		if err != nil {
			return err
		}
	}
	return buf.Flush()
}

// FileSink replaces the file at Path with the lines.
type FileSink struct {
	Path string
}

func (s FileSink) WriteLines(lines []string) (err error) {
	f, err := os.Create(s.Path)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, f.Close())
	}()
	return WriterSink{W: f}.WriteLines(lines)
}
