package grammar

import (
	"fmt"
	"io"
	"strings"

	mlcompiler "github.com/nihei9/maleeni/compiler"
	mlspec "github.com/nihei9/maleeni/spec"

	"github.com/gramgen/gramgen/spec"
)

// Compile turns a validated grammar model into its wire form. When the
// token kinds carry lexical patterns, the lexical specification is compiled
// with maleeni and embedded so that generated parsers can lex raw text.
func Compile(gram *Grammar) (*spec.CompiledGrammar, error) {
	kinds := gram.tokens.Kinds()
	tokIdx := map[*TokenKind]int{}
	tokens := make([]*spec.CompiledTokenKind, len(kinds))
	for i, k := range kinds {
		tokIdx[k] = i
		tokens[i] = &spec.CompiledTokenKind{
			ID:        k.ID,
			Name:      k.Name,
			ValueType: k.ValueType,
			Pattern:   k.Pattern,
			Skip:      k.Skip,
		}
	}

	classIdx := map[*RuleClass]int{}
	for i, c := range gram.classes {
		classIdx[c] = i
	}
	ifaceIdx := map[*Interface]int{}
	for i, f := range gram.interfaces {
		ifaceIdx[f] = i
	}

	classes := make([]*spec.CompiledClass, len(gram.classes))
	for i, c := range gram.classes {
		needs := make([]*spec.CompiledNeed, len(c.Needs))
		for j, n := range c.Needs {
			needs[j] = &spec.CompiledNeed{
				Field: n.Field,
				Value: n.StoresValue(),
			}
		}

		pats := make([]*spec.CompiledPattern, len(c.Patterns))
		for j, p := range c.Patterns {
			elems := make([]*spec.CompiledElement, len(p.Elements))
			for k, e := range p.Elements {
				switch e.Kind {
				case elemToken:
					elems[k] = &spec.CompiledElement{
						Kind:  spec.ElementKindToken,
						Index: tokIdx[e.TokenKind],
					}
				case elemClass:
					elems[k] = &spec.CompiledElement{
						Kind:  spec.ElementKindClass,
						Index: classIdx[e.Class],
					}
				default:
					elems[k] = &spec.CompiledElement{
						Kind:  spec.ElementKindInterface,
						Index: ifaceIdx[e.Iface],
					}
				}
			}
			pats[j] = &spec.CompiledPattern{
				Elements: elems,
				Bindings: p.Bindings,
			}
		}

		classes[i] = &spec.CompiledClass{
			Name:     c.Name,
			Needs:    needs,
			Patterns: pats,
		}
	}

	interfaces := make([]*spec.CompiledInterface, len(gram.interfaces))
	for i, f := range gram.interfaces {
		impls := make([]int, len(f.Implementors))
		for j, impl := range f.Implementors {
			impls[j] = classIdx[impl]
		}
		interfaces[i] = &spec.CompiledInterface{
			Name:         f.Name,
			Implementors: impls,
		}
	}

	lexical, err := compileLexSpec(kinds)
	if err != nil {
		return nil, err
	}

	return &spec.CompiledGrammar{
		Name:       gram.name,
		Tokens:     tokens,
		Classes:    classes,
		Interfaces: interfaces,
		Root:       classIdx[gram.root],
		Lexical:    lexical,
	}, nil
}

func compileLexSpec(kinds []*TokenKind) (*mlspec.CompiledLexSpec, error) {
	entries := make([]*mlspec.LexEntry, 0, len(kinds))
	for _, k := range kinds {
		if k.Pattern == "" {
			return nil, nil
		}
		entries = append(entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(k.Name),
			Pattern: mlspec.LexPattern(k.Pattern),
		})
	}
	if len(entries) == 0 {
		return nil, nil
	}

	compiled, err, cErrs := mlcompiler.Compile(&mlspec.LexSpec{
		Entries: entries,
	}, mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
	if err != nil {
		if len(cErrs) > 0 {
			var b strings.Builder
			writeCompileError(&b, cErrs[0])
			for _, cErr := range cErrs[1:] {
				fmt.Fprintf(&b, "\n")
				writeCompileError(&b, cErr)
			}
			return nil, fmt.Errorf("%v", b.String())
		}
		return nil, err
	}

	return compiled, nil
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}
