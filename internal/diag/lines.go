package diag

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// EachLine calls fn for every line of r with its 1-based number and the
// trailing "\n" or "\r\n" removed. Lines have no length limit, so one
// oversized row is handed to fn like any other. The returned error is a
// read failure, never a content problem.
func EachLine(r io.Reader, fn func(num int, line string)) error {
	br := bufio.NewReader(r)
	num := 0
	for {
		line, err := br.ReadString('\n')
		if line != "" {
			num++
			line = strings.TrimSuffix(line, "\n")
			fn(num, strings.TrimSuffix(line, "\r"))
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
