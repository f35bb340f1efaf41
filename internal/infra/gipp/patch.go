package gipp

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aalvaropc/s2composite/internal/domain"
)

type frame struct {
	name     string
	path     string
	tagStart int64
	tagEnd   int64
	target   bool
}

type edit struct {
	start, end int64
	text       []byte
}

// Patch replaces the text of the elements named by values and leaves every
// other byte of src untouched. Paths are relative to the document root element,
// and only the first element matching a path is rewritten.
func Patch(src []byte, values []domain.GIPPValue) ([]byte, error) {
	want := make(map[string]string, len(values))
	for _, v := range values {
		want[v.Path] = v.Text
	}
	claimed := make(map[string]bool, len(values))

	d := xml.NewDecoder(bytes.NewReader(src))
	var stack []frame
	var edits []edit

	for {
		before := d.InputOffset()
		tok, err := d.RawToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			f := frame{name: qualified(t.Name), tagStart: before, tagEnd: d.InputOffset()}
			if len(stack) > 0 {
				f.path = joinPath(stack[1:], f.name)
				if _, ok := want[f.path]; ok && !claimed[f.path] {
					f.target = true
					claimed[f.path] = true
				}
			}
			stack = append(stack, f)

		case xml.EndElement:
			if len(stack) == 0 {
				return nil, fmt.Errorf("parse xml: unexpected end element %s", qualified(t.Name))
			}
			f := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !f.target {
				continue
			}

			text := escape(want[f.path])
			tag := src[f.tagStart:f.tagEnd]
			if before == f.tagEnd && bytes.HasSuffix(tag, []byte("/>")) {
				open := strings.TrimRight(strings.TrimSuffix(string(tag), "/>"), " \t\r\n")
				edits = append(edits, edit{
					start: f.tagStart,
					end:   f.tagEnd,
					text:  []byte(open + ">" + string(text) + "</" + f.name + ">"),
				})
				continue
			}
			edits = append(edits, edit{start: f.tagEnd, end: before, text: text})
		}
	}

	var missing []string
	for _, v := range values {
		if !claimed[v.Path] {
			missing = append(missing, v.Path)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("element(s) not found: %s", strings.Join(missing, ", "))
	}

	return apply(src, edits), nil
}

func apply(src []byte, edits []edit) []byte {
	sort.Slice(edits, func(i, j int) bool { return edits[i].start < edits[j].start })

	var out bytes.Buffer
	out.Grow(len(src))
	var pos int64
	for _, e := range edits {
		out.Write(src[pos:e.start])
		out.Write(e.text)
		pos = e.end
	}
	out.Write(src[pos:])
	return out.Bytes()
}

func joinPath(parents []frame, name string) string {
	parts := make([]string, 0, len(parents)+1)
	for _, p := range parents {
		parts = append(parts, p.name)
	}
	return strings.Join(append(parts, name), "/")
}

func qualified(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}

func escape(s string) []byte {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.Bytes()
}
