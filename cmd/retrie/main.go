// The retrie command builds a trie-shaped regular expression from a word list
// and applies it to text.
//
// Usage:
//
//	retrie [flags] <command> [text ...]
//
// Words come from a YAML definition (-config), a word file (-keys) or the
// repeatable -k flag; in replace mode -k takes key=value pairs. Commands that
// process text read their arguments, or standard input line by line when
// there are none.
//
//	pattern   print the wrapped pattern
//	check     print listed texts; exit status 1 when none is listed
//	filter    print the texts the policy keeps (replace mode: rewritten)
//	cleanse   print every text cleansed according to the policy
//	replace   print every text with at most -count replacements
//	gen       write Go source for the compiled pattern (-pkg, -name, -o)
//	repl      interactive session
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"iter"
	"log"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/coregx/retrie"
	"github.com/coregx/retrie/config"
	"github.com/coregx/retrie/gen"
)

// Exit codes follow grep: 1 means check found nothing, 2 means failure.
const (
	exitOK       = 0
	exitNotFound = 1
	exitError    = 2
)

// arrayFlags collects a repeatable string flag.
type arrayFlags []string

func (a *arrayFlags) String() string {
	return strings.Join(*a, ", ")
}

func (a *arrayFlags) Set(value string) error {
	*a = append(*a, value)
	return nil
}

type options struct {
	config        string
	mode          string
	keysFile      string
	keys          arrayFlags
	substrings    bool
	boundary      string
	caseSensitive bool
	engine        string
	noPrefilter   bool
	count         int
	pkg           string
	name          string
	out           string
}

func (o *options) register(fs *flag.FlagSet) {
	fs.StringVar(&o.config, "config", "", "load the checklist definition from YAML `file`")
	fs.StringVar(&o.mode, "mode", "", "checklist policy: deny, allow or replace (default deny)")
	fs.StringVar(&o.keysFile, "keys", "", "read words from `file`, one per line")
	fs.Var(&o.keys, "k", "add a word (replace mode: key=value); repeatable")
	fs.BoolVar(&o.substrings, "substrings", false, "match words inside longer words")
	fs.StringVar(&o.boundary, "boundary", retrie.WordBoundary, "boundary token around the pattern")
	fs.BoolVar(&o.caseSensitive, "case-sensitive", false, "match case-sensitively")
	fs.StringVar(&o.engine, "engine", "", "regex engine: regexp2 or re2 (default regexp2)")
	fs.BoolVar(&o.noPrefilter, "no-prefilter", false, "disable literal prefiltering")
	fs.IntVar(&o.count, "count", 0, "replace at most `n` matches per text (0: all)")
	fs.StringVar(&o.pkg, "pkg", "words", "package name for gen")
	fs.StringVar(&o.name, "name", "Words", "identifier prefix for gen")
	fs.StringVar(&o.out, "o", "", "gen output `file` (default stdout)")
}

// definition merges the YAML definition, if any, with the flags that were
// set explicitly on the command line.
func (o *options) definition(fs *flag.FlagSet) (*config.File, error) {
	f := &config.File{}
	if o.config != "" {
		loaded, err := config.Load(o.config)
		if err != nil {
			return nil, err
		}
		f = loaded
	}

	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "mode":
			f.Mode = o.mode
		case "substrings":
			f.MatchSubstrings = o.substrings
		case "boundary":
			b := o.boundary
			f.WordBoundary = &b
		case "case-sensitive":
			f.CaseSensitive = o.caseSensitive
		case "engine":
			f.Engine = o.engine
		case "no-prefilter":
			p := !o.noPrefilter
			f.Prefilter = &p
		}
	})

	policy, err := f.Policy()
	if err != nil {
		return nil, err
	}

	var words []string
	if o.keysFile != "" {
		words, err = config.ReadKeysFile(o.keysFile)
		if err != nil {
			return nil, err
		}
	}
	words = append(words, o.keys...)

	if policy != retrie.Replace {
		f.Keys = append(f.Keys, words...)
		return f, nil
	}
	for _, w := range words {
		k, v, ok := strings.Cut(w, "=")
		if !ok {
			return nil, errors.Errorf("replace mode wants key=value, got %q", w)
		}
		if f.Replacements == nil {
			f.Replacements = map[string]string{}
		}
		f.Replacements[k] = v
	}
	return f, nil
}

func main() {
	log.SetPrefix("retrie: ")
	log.SetFlags(0)
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout))
}

func run(args []string, stdin io.Reader, stdout io.Writer) int {
	fs := flag.NewFlagSet("retrie", flag.ContinueOnError)
	var o options
	o.register(fs)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: retrie [flags] pattern|check|filter|cleanse|replace|gen|repl [text ...]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return exitOK
		}
		return exitError
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitError
	}

	def, err := o.definition(fs)
	if err != nil {
		log.Print(err)
		return exitError
	}
	list, err := def.Build()
	if err != nil {
		log.Print(err)
		return exitError
	}

	w := bufio.NewWriter(stdout)
	defer w.Flush()

	code, err := dispatch(fs.Arg(0), fs.Args()[1:], list, &o, stdin, w)
	if err != nil {
		w.Flush()
		log.Print(err)
		return exitError
	}
	return code
}

func dispatch(cmd string, args []string, list *retrie.Checklist, o *options, stdin io.Reader, w *bufio.Writer) (int, error) {
	in := newInput(args, stdin)

	switch cmd {
	case "pattern":
		fmt.Fprintln(w, list.Source())
	case "check":
		found := false
		for text := range in.All() {
			if list.IsListed(text) {
				found = true
				fmt.Fprintln(w, text)
			}
		}
		if err := in.Err(); err != nil {
			return exitError, err
		}
		if !found {
			return exitNotFound, nil
		}
	case "filter":
		for text := range list.Filter(in.All()) {
			fmt.Fprintln(w, text)
		}
		return exitOK, in.Err()
	case "cleanse":
		for text := range in.All() {
			fmt.Fprintln(w, list.CleanseText(text))
		}
		return exitOK, in.Err()
	case "replace":
		if list.Policy() != retrie.Replace {
			return exitError, errors.Errorf("replace needs -mode replace, have %s", list.Policy())
		}
		for text := range in.All() {
			fmt.Fprintln(w, list.Replace(text, o.count))
		}
		return exitOK, in.Err()
	case "gen":
		cfg := gen.Config{Package: o.pkg, Name: o.name}
		if o.out != "" {
			return exitOK, gen.Save(o.out, cfg, list)
		}
		return exitOK, gen.Render(w, cfg, list)
	case "repl":
		return exitOK, repl(list, stdin, w)
	default:
		return exitError, errors.Errorf("unknown command %q", cmd)
	}
	return exitOK, nil
}

// input yields command arguments, or the lines of a reader when there are
// no arguments.
type input struct {
	args []string
	sc   *bufio.Scanner
}

const maxLine = 1 << 20

func newInput(args []string, r io.Reader) *input {
	if len(args) > 0 {
		return &input{args: args}
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	return &input{sc: sc}
}

func (in *input) All() iter.Seq[string] {
	return func(yield func(string) bool) {
		if in.sc == nil {
			for _, a := range in.args {
				if !yield(a) {
					return
				}
			}
			return
		}
		for in.sc.Scan() {
			if !yield(in.sc.Text()) {
				return
			}
		}
	}
}

func (in *input) Err() error {
	if in.sc == nil {
		return nil
	}
	return errors.Wrap(in.sc.Err(), "reading input")
}
