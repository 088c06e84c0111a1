// Package gen writes Go source for a precompiled checklist pattern, so
// programs can embed a fixed word list without building the trie at start-up.
package gen

import (
	"fmt"
	"go/token"
	"io"
	"maps"
	"slices"

	"github.com/dave/jennifer/jen"
	"github.com/pkg/errors"

	"github.com/coregx/retrie"
	"github.com/coregx/retrie/engine"
)

const (
	regexp2Path = "github.com/dlclark/regexp2"
	regexpPath  = "regexp"
)

// Config names the generated declarations.
type Config struct {
	// Package is the package clause of the generated file.
	Package string

	// Name prefixes every generated identifier: Name holds the compiled
	// pattern, NamePattern its source, NameReplacements the mapping.
	Name string
}

// Validate checks that both names are Go identifiers.
func (c Config) Validate() error {
	if !token.IsIdentifier(c.Package) {
		return errors.Errorf("package %q is not an identifier", c.Package)
	}
	if !token.IsIdentifier(c.Name) {
		return errors.Errorf("name %q is not an identifier", c.Name)
	}
	return nil
}

// Generate builds the file for list. The compiled variable uses the engine
// list was configured with; other engines are rejected.
func Generate(cfg Config, list *retrie.Checklist) (*jen.File, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid generator config")
	}

	src := list.Source()
	flags := list.Flags()

	var compile *jen.Statement
	switch eng := list.Engine().(type) {
	case engine.Regexp2:
		compile = jen.Qual(regexp2Path, "MustCompile").Call(jen.Id(cfg.Name+"Pattern"), regexp2Options(flags))
	case engine.RE2:
		src = eng.Source(src, flags)
		compile = jen.Qual(regexpPath, "MustCompile").Call(jen.Id(cfg.Name + "Pattern"))
	default:
		return nil, errors.Errorf("cannot generate code for engine %s", eng.Name())
	}

	f := jen.NewFile(cfg.Package)
	f.HeaderComment("Code generated by retrie. DO NOT EDIT.")

	f.Comment(fmt.Sprintf("%sPattern is the %s pattern over %d words.", cfg.Name, list.Policy(), list.Trie().Len()))
	f.Const().Id(cfg.Name + "Pattern").Op("=").Lit(src)
	f.Line()

	f.Comment(fmt.Sprintf("%s is %sPattern compiled with %s (flags: %s).", cfg.Name, cfg.Name, list.Engine().Name(), flags))
	f.Var().Id(cfg.Name).Op("=").Add(compile)

	if list.Policy() == retrie.Replace {
		mapping := list.Mapping()
		f.Line()
		f.Comment(fmt.Sprintf("%sReplacements maps each matched word to its replacement.", cfg.Name))
		if flags&retrie.FlagIgnoreCase != 0 {
			f.Comment("Look matches up by their case-folded form, see retrie.FoldKey.")
		}
		f.Var().Id(cfg.Name + "Replacements").Op("=").Map(jen.String()).String().Values(jen.DictFunc(func(d jen.Dict) {
			for _, k := range slices.Sorted(maps.Keys(mapping)) {
				d[jen.Lit(k)] = jen.Lit(mapping[k])
			}
		}))
	}
	return f, nil
}

func regexp2Options(flags engine.Flags) jen.Code {
	if flags&engine.FlagIgnoreCase != 0 {
		return jen.Qual(regexp2Path, "IgnoreCase")
	}
	return jen.Qual(regexp2Path, "None")
}

// Render generates the file for list and writes it to w.
func Render(w io.Writer, cfg Config, list *retrie.Checklist) error {
	f, err := Generate(cfg, list)
	if err != nil {
		return err
	}
	if err := f.Render(w); err != nil {
		return errors.Wrap(err, "rendering generated code")
	}
	return nil
}

// Save generates the file for list and writes it, gofmt-formatted, to path.
func Save(path string, cfg Config, list *retrie.Checklist) error {
	f, err := Generate(cfg, list)
	if err != nil {
		return err
	}
	if err := f.Save(path); err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}
	return nil
}
