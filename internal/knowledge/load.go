package knowledge

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abhisek/quizpath/internal/diag"
)

// Load reads a graph file of lines "topic|prereq1,prereq2,...".
func Load(path string) (*Graph, []diag.Diagnostic, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open knowledge graph: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse reads graph lines from r. Lines without '|' are skipped with a
// diagnostic. A topic declared twice keeps its last prerequisite list.
func Parse(r io.Reader) (*Graph, []diag.Diagnostic, error) {
	prereqs := make(map[string][]string)
	declaredAt := make(map[string]int)
	var diags []diag.Diagnostic

	err := diag.EachLine(r, func(lineNum int, line string) {
		if strings.TrimSpace(line) == "" {
			return
		}

		topicPart, prereqPart, ok := strings.Cut(line, "|")
		if !ok {
			diags = append(diags, diag.At(lineNum, "missing '|' separator"))
			return
		}
		topic := strings.TrimSpace(topicPart)
		if topic == "" {
			diags = append(diags, diag.At(lineNum, "empty topic name"))
			return
		}

		var ps []string
		for _, p := range strings.Split(prereqPart, ",") {
			if p = strings.TrimSpace(p); p != "" {
				ps = append(ps, p)
			}
		}

		if prev, dup := declaredAt[topic]; dup {
			diags = append(diags, diag.At(lineNum, "topic %q redeclared (line %d), prerequisites replaced", topic, prev))
		}
		declaredAt[topic] = lineNum
		prereqs[topic] = ps
	})
	if err != nil {
		return nil, diags, fmt.Errorf("read knowledge graph: %w", err)
	}
	return New(prereqs), diags, nil
}
