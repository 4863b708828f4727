package readfiles

import (
	"bufio"
	"io"
	"strings"
)

// nextLine returns the next trimmed line with any % comment removed.
func nextLine(reader *bufio.Reader) (line string, more bool) {
	raw, err := reader.ReadString('\n')
	if err != nil && err != io.EOF {
		fail("%v", err)
	}
	if err == io.EOF && raw == "" {
		return
	}
	more = true
	if ind := strings.Index(raw, "%"); ind >= 0 {
		raw = raw[:ind]
	}
	line = strings.TrimSpace(raw)
	return
}

func getLine(reader *bufio.Reader) (line string) {
	var more bool
	if line, more = nextLine(reader); !more {
		fail("early end of file")
	}
	return
}

// getLineNoComments skips blank and comment only lines.
func getLineNoComments(reader *bufio.Reader) (line string) {
	for {
		if line = getLine(reader); line != "" {
			return
		}
	}
}

func skipLines(n int, reader *bufio.Reader) {
	for i := 0; i < n; i++ {
		getLineNoComments(reader)
	}
}
