package service

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

const questionArraySchemaURL = "medquiz://schemas/question-array.json"

// questionArraySchema accepts any array of objects. Field-level checks are done
// by the lenient decoder, so providers that add or rename fields still pass.
const questionArraySchema = `{"type":"array","items":{"type":"object"}}`

var (
	thinkBlockRe = regexp.MustCompile(`(?s)<think>.*?</think>`)
	codeFenceRe  = regexp.MustCompile("(?m)^\\s*```[a-zA-Z]*\\s*$")

	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

var ErrNoJSONArray = errors.New("no JSON array found in provider output")

func questionSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(questionArraySchema))
		if err != nil {
			schemaErr = fmt.Errorf("parse schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource(questionArraySchemaURL, doc); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		compiledSchema, schemaErr = c.Compile(questionArraySchemaURL)
	})
	return compiledSchema, schemaErr
}

// ExtractJSONArray pulls the first JSON array of objects out of free-form
// provider output. Reasoning blocks and markdown fences are stripped first.
// The span runs from the first '[' to its matching ']' (string contents are
// skipped while counting); if no balanced span parses, the first '[' to the
// last ']' is tried.
func ExtractJSONArray(text string) (json.RawMessage, error) {
	cleaned := thinkBlockRe.ReplaceAllString(text, "")
	cleaned = codeFenceRe.ReplaceAllString(cleaned, "")

	start := strings.IndexByte(cleaned, '[')
	if start < 0 {
		return nil, ErrNoJSONArray
	}

	candidates := make([]string, 0, 2)
	if end := matchingBracket(cleaned, start); end > start {
		candidates = append(candidates, cleaned[start:end+1])
	}
	if last := strings.LastIndexByte(cleaned, ']'); last > start {
		candidates = append(candidates, cleaned[start:last+1])
	}
	if len(candidates) == 0 {
		return nil, ErrNoJSONArray
	}

	schema, err := questionSchema()
	if err != nil {
		return nil, err
	}

	var lastErr error = ErrNoJSONArray
	for _, candidate := range candidates {
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(candidate))
		if err != nil {
			lastErr = fmt.Errorf("parse array: %w", err)
			continue
		}
		if err := schema.Validate(doc); err != nil {
			lastErr = fmt.Errorf("validate array: %w", err)
			continue
		}
		var compact bytes.Buffer
		if err := json.Compact(&compact, []byte(candidate)); err != nil {
			lastErr = err
			continue
		}
		return compact.Bytes(), nil
	}
	return nil, lastErr
}

// matchingBracket returns the index of the ']' closing the '[' at start, or -1.
func matchingBracket(s string, start int) int {
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
