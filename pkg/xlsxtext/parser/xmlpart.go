package parser

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"golang.org/x/net/html/charset"
)

// xmlPart is a forward-only token cursor over one package entry.
type xmlPart struct {
	name    string
	file    fs.File
	decoder *xml.Decoder
}

// openPart opens name inside fsys. A missing entry is reported as an
// ErrArchive that also matches fs.ErrNotExist.
func openPart(fsys fs.FS, name string) (*xmlPart, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", ErrArchive, name, err)
	}
	decoder := xml.NewDecoder(f)
	decoder.CharsetReader = charset.NewReaderLabel
	return &xmlPart{name: name, file: f, decoder: decoder}, nil
}

func (p *xmlPart) Close() error {
	if p.file == nil {
		return nil
	}
	err := p.file.Close()
	p.file = nil
	return err
}

func (p *xmlPart) token() (xml.Token, error) {
	tok, err := p.decoder.Token()
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %s: %w", ErrFormat, p.name, err)
	}
	return tok, err
}

// descend advances to the next start element named local at any depth.
func (p *xmlPart) descend(local string) (xml.StartElement, bool, error) {
	for {
		tok, err := p.token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, false, nil
		}
		if err != nil {
			return xml.StartElement{}, false, err
		}
		if se, ok := tok.(xml.StartElement); ok && se.Name.Local == local {
			return se, true, nil
		}
	}
}

// nextChild returns the next child element of the element most recently
// entered. It returns false once that element's end tag is consumed.
// The caller must consume the returned child (skip, text or its own
// nextChild loop) before asking for the next one.
func (p *xmlPart) nextChild() (xml.StartElement, bool, error) {
	for {
		tok, err := p.token()
		if errors.Is(err, io.EOF) {
			return xml.StartElement{}, false, fmt.Errorf("%w: %s: unexpected end of document", ErrFormat, p.name)
		}
		if err != nil {
			return xml.StartElement{}, false, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			return t, true, nil
		case xml.EndElement:
			return xml.StartElement{}, false, nil
		}
	}
}

// text reads the character data of the current element up to its end tag.
// Text of nested elements is ignored.
func (p *xmlPart) text() (string, error) {
	var text []byte
	depth := 1
	for depth > 0 {
		tok, err := p.token()
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%w: %s: unexpected end of document", ErrFormat, p.name)
		}
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			if depth == 1 {
				text = append(text, t...)
			}
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return string(text), nil
}

// skip consumes the rest of the current element.
func (p *xmlPart) skip() error {
	if err := p.decoder.Skip(); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrFormat, p.name, err)
	}
	return nil
}

// attr returns the value of the attribute with the given local name.
func attr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local {
			return a.Value, true
		}
	}
	return "", false
}

// nsAttr is attr restricted to namespaced attributes such as r:id.
func nsAttr(se xml.StartElement, local string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == local && a.Name.Space != "" {
			return a.Value, true
		}
	}
	return "", false
}
