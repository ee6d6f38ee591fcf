package sources

import (
	"bufio"
	"io"
	"strings"

	"github.com/juju/errors"

	"proxographer/proxlib"
)

const NamePlain = "plain"

type plainSource struct{}

func (plainSource) Name() string {
	return NamePlain
}

// Parse reads a newline-delimited ip:port list. Blank lines are
// skipped, a line without a colon is a parse error. The port is taken
// as the remainder after the first colon, verbatim.
func (plainSource) Parse(r io.Reader) ([]proxlib.Entry, error) {
	entries := []proxlib.Entry{}
	scanner := bufio.NewScanner(r)
	lineNum := 0

	for scanner.Scan() {
		lineNum++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		chunks := strings.SplitN(line, ":", 2)
		if len(chunks) != 2 {
			return nil, errors.Annotatef(proxlib.ErrMalformedLine, "line %d: %s", lineNum, line)
		}

		entries = append(entries, proxlib.Entry{
			IP:   chunks[0],
			Port: chunks[1],
		})
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Annotate(err, "cannot read proxy list")
	}

	return entries, nil
}

// NewPlain makes a source for feeds which publish plain ip:port text,
// one proxy per line.
func NewPlain() proxlib.Source {
	return plainSource{}
}
