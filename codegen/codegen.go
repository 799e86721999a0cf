// Package codegen prints generated parser source. The generated file embeds
// the compiled grammar and exposes the parse entry points; all algorithmic
// work stays in the driver package it imports.
package codegen

import (
	"bytes"
	"encoding/json"
	"fmt"
	"go/format"
	"strings"
	"text/template"
	"unicode"

	"github.com/gramgen/gramgen/spec"
)

const parserTemplate = `// Code generated by gramgen. DO NOT EDIT.

package {{ .PkgName }}

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/gramgen/gramgen/driver"
	"github.com/gramgen/gramgen/spec"
)

var {{ .GramVar }} = func() *spec.CompiledGrammar {
	g := &spec.CompiledGrammar{}
	err := json.Unmarshal([]byte({{ printf "%q" .GramJSON }}), g)
	if err != nil {
		panic(err)
	}
	return g
}()

// ParseFromText parses raw text against the {{ .GramName }} grammar.
func ParseFromText(text string) (*driver.Instance, error) {
	return driver.ParseText({{ .GramVar }}, strings.NewReader(text))
}

// ParseFromFile parses the contents of a file against the {{ .GramName }} grammar.
func ParseFromFile(path string) (*driver.Instance, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return driver.ParseText({{ .GramVar }}, f)
}

// ParseFromTokens parses a pre-lexed token stream against the {{ .GramName }} grammar.
func ParseFromTokens(toks []*driver.Token) (*driver.Instance, error) {
	p, err := driver.NewParser({{ .GramVar }}, driver.NewTokenStream(toks))
	if err != nil {
		return nil, err
	}
	return p.Parse()
}
`

// GenParser prints the generated parser for a compiled grammar.
func GenParser(cgram *spec.CompiledGrammar, pkgName string) ([]byte, error) {
	gramJSON, err := json.Marshal(cgram)
	if err != nil {
		return nil, err
	}

	t, err := template.New("parser").Parse(parserTemplate)
	if err != nil {
		return nil, err
	}

	var b bytes.Buffer
	err = t.Execute(&b, map[string]any{
		"PkgName":  pkgName,
		"GramName": cgram.Name,
		"GramVar":  gramVarName(cgram.Name),
		"GramJSON": string(gramJSON),
	})
	if err != nil {
		return nil, err
	}

	src, err := format.Source(b.Bytes())
	if err != nil {
		return nil, fmt.Errorf("cannot format the generated parser source: %w", err)
	}
	return src, nil
}

// gramVarName derives a Go identifier from a grammar name.
func gramVarName(name string) string {
	var b strings.Builder
	for _, r := range name {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	id := b.String()
	if id == "" || unicode.IsDigit(rune(id[0])) {
		id = "g" + id
	}
	return id + "Grammar"
}
