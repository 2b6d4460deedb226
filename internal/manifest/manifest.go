package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jakoblorz/feathers-electron/internal/filesystem"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var (
	// ErrInvalidManifest is returned when package.json is not a JSON object.
	ErrInvalidManifest = errors.New("invalid package.json")

	// ErrScriptsNotObject is returned when "scripts" is present but not an object.
	ErrScriptsNotObject = errors.New(`package.json "scripts" is not an object`)
)

const scriptsKey = "scripts"

// ReadScripts returns the scripts of a package.json document in document order.
// A missing or null "scripts" yields no scripts.
func ReadScripts(data []byte) ([]Script, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidManifest
	}

	root := gjson.ParseBytes(data)
	if !root.IsObject() {
		return nil, fmt.Errorf("%w: top level is not an object", ErrInvalidManifest)
	}

	raw := root.Get(scriptsKey)
	if !raw.Exists() || raw.Type == gjson.Null {
		return nil, nil
	}
	if !raw.IsObject() {
		return nil, ErrScriptsNotObject
	}

	var scripts []Script
	index := make(map[string]int)
	raw.ForEach(func(key, value gjson.Result) bool {
		s := Script{Name: key.String(), Command: value.String()}
		if value.Type != gjson.String {
			s.Raw = value.Raw
		}

		// A repeated name keeps its first position and its last value.
		if i, ok := index[s.Name]; ok {
			scripts[i] = s
			return true
		}
		index[s.Name] = len(scripts)
		scripts = append(scripts, s)
		return true
	})

	return scripts, nil
}

// Apply replaces the "scripts" object of a package.json document with the
// merge of its current scripts and ElectronScripts. Every other byte of the
// document is kept as is. The new scripts object is indented the way the
// document's top-level keys are, and the result ends with a newline.
func Apply(data []byte) ([]byte, []Script, error) {
	existing, err := ReadScripts(data)
	if err != nil {
		return nil, nil, err
	}

	merged := MergeScripts(existing, ElectronScripts, LegacyScripts)

	encoded, err := encodeScripts(merged)
	if err != nil {
		return nil, nil, err
	}

	doc := bytes.TrimRight(data, " \t\r\n")
	trailing := data[len(doc):]
	if len(trailing) == 0 {
		trailing = []byte("\n")
	}

	unit := indentUnit(doc)
	if unit != "" {
		encoded = bytes.TrimPrefix(pretty.PrettyOptions(encoded, &pretty.Options{
			Width:  80,
			Prefix: unit,
			Indent: unit,
		}), []byte(unit))
		encoded = bytes.TrimSuffix(encoded, []byte("\n"))
	}

	var patched []byte
	if gjson.GetBytes(doc, scriptsKey).Exists() {
		patched, err = sjson.SetRawBytes(doc, scriptsKey, encoded)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to set scripts: %w", err)
		}
	} else {
		patched = appendScripts(doc, encoded, unit)
	}

	return append(patched, trailing...), merged, nil
}

// indentUnit returns the leading whitespace of the first top-level key, or
// "" when the document is written on one line.
func indentUnit(doc []byte) string {
	start := bytes.IndexByte(doc, '{')
	nl := bytes.IndexByte(doc[start+1:], '\n')
	if nl < 0 {
		return ""
	}

	line := doc[start+1+nl+1:]
	width := len(line) - len(bytes.TrimLeft(line, " \t"))
	return string(line[:width])
}

// appendScripts adds the "scripts" key as the last member of doc.
func appendScripts(doc, encoded []byte, unit string) []byte {
	end := bytes.LastIndexByte(doc, '}')
	body := bytes.TrimRight(doc[:end], " \t\r\n")

	out := make([]byte, 0, len(doc)+len(encoded)+32)
	out = append(out, body...)
	if body[len(body)-1] != '{' {
		out = append(out, ',')
	}
	if unit == "" {
		out = append(out, `"scripts":`...)
		out = append(out, encoded...)
		return append(out, '}')
	}

	out = append(out, '\n')
	out = append(out, unit...)
	out = append(out, `"scripts": `...)
	out = append(out, encoded...)
	return append(out, '\n', '}')
}

// Patch rewrites the package.json at path in place and returns the merged scripts.
func Patch(fsys filesystem.FileSystem, path string) ([]Script, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	patched, merged, err := Apply(data)
	if err != nil {
		return nil, fmt.Errorf("failed to patch %s: %w", path, err)
	}

	perm := fs.FileMode(0644)
	if info, err := fsys.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	if err := fsys.WriteFile(path, patched, perm); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", path, err)
	}

	return merged, nil
}

// encodeScripts renders scripts as a compact JSON object, preserving order.
// HTML characters stay unescaped so "&&" round-trips as written.
func encodeScripts(scripts []Script) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, s := range scripts {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeString(&buf, s.Name); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if s.Raw != "" {
			buf.WriteString(s.Raw)
			continue
		}
		if err := writeString(&buf, s.Command); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')

	return buf.Bytes(), nil
}

func writeString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("failed to encode %q: %w", s, err)
	}
	buf.Write(bytes.TrimSuffix(tmp.Bytes(), []byte("\n")))
	return nil
}
