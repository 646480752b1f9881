package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/bstree/bstree"
	"github.com/vancomm/bstree/internal/commands"
	"github.com/vancomm/bstree/internal/store"
)

const usage = `commands:
  g <key>            get
  s <key> <value>    set, replacing an equal key
  i <key> <value>    insert, keeping duplicates
  r <key>            remove
  t pre|in|post|bfs  traverse
  c                  count
  h                  height
  p                  print shape
  q                  quit`

var (
	log = logrus.New()

	verbose bool
	quiet   bool
)

func init() {
	flag.BoolVar(&verbose, "v", false, "log tree restructuring")
	flag.BoolVar(&quiet, "q", false, "do not print the prompt")
}

func repl(s *store.Store, in io.Reader, out io.Writer, prompt string) error {
	scanner := bufio.NewScanner(in)
	fmt.Fprint(out, prompt)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
		case "q":
			return nil
		case "?", "help":
			fmt.Fprintln(out, usage)
		default:
			result, err := commands.Execute(s, line)
			if err != nil {
				fmt.Fprintln(out, "error:", err)
			} else {
				fmt.Fprintln(out, result)
			}
		}
		fmt.Fprint(out, prompt)
	}
	return scanner.Err()
}

func main() {
	flag.Parse()

	log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	if verbose {
		bstree.Log.SetLevel(logrus.DebugLevel)
		bstree.Log.SetFormatter(&logrus.TextFormatter{ForceColors: true})
	}

	prompt := "> "
	if quiet {
		prompt = ""
	}

	if err := repl(store.New(), os.Stdin, os.Stdout, prompt); err != nil {
		log.Fatal("unable to read input: ", err)
	}
}
