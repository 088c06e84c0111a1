package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/coregx/retrie"
)

const prompt = "retrie> "

// repl reads texts and prints, for each, whether it is listed and its
// cleansed form. Lines starting with ':' are commands:
//
//	:add w ...   add words (deny and allow only)
//	:pattern     print the current pattern
//	:words       print the words
//	:stats       print prefilter statistics
//
// Readline editing is used when stdin is a terminal; otherwise lines are read
// plainly and no prompt is printed.
func repl(list *retrie.Checklist, stdin io.Reader, w *bufio.Writer) error {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return interactive(list, w)
	}

	sc := bufio.NewScanner(stdin)
	sc.Buffer(make([]byte, 64*1024), maxLine)
	for sc.Scan() {
		eval(list, sc.Text(), w)
	}
	return sc.Err()
}

func interactive(list *retrie.Checklist, w *bufio.Writer) error {
	rl, err := readline.New(prompt)
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		eval(list, line, w)
		if err := w.Flush(); err != nil {
			return err
		}
	}
}

func eval(list *retrie.Checklist, line string, w *bufio.Writer) {
	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case ":add":
		if list.Policy() == retrie.Replace {
			fmt.Fprintln(w, "cannot add words without replacements")
			return
		}
		list.Trie().Add(strings.Fields(arg)...)
		fmt.Fprintln(w, list.Source())
	case ":pattern":
		fmt.Fprintln(w, list.Source())
	case ":words":
		for word := range list.Trie().Words() {
			fmt.Fprintln(w, word)
		}
	case ":stats":
		st, ok := list.PrefilterStats()
		if !ok {
			fmt.Fprintln(w, "no prefilter")
			return
		}
		fmt.Fprintf(w, "%s: %d checks, %d rejected (%.2f), active %v\n",
			st.Strategy, st.Checks, st.Rejects, st.Efficiency, st.Active)
	default:
		fmt.Fprintf(w, "%v\t%s\n", list.IsListed(line), list.CleanseText(line))
	}
}
