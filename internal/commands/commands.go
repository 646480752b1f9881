package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/bstree/bstree"
	"github.com/vancomm/bstree/internal/store"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrArguments      = errors.New("invalid number of arguments")
	ErrUnknownOrder   = errors.New("unknown traversal order")
)

// Maps known commands to number of arguments. The last argument takes the
// rest of the line, so values may contain spaces.
var commandNargs = map[string]int{
	"g": 1, // get <key>
	"s": 2, // set <key> <value>
	"i": 2, // insert <key> <value>
	"r": 1, // remove <key>
	"t": 1, // traverse <pre|in|post|bfs>
	"c": 0, // count
	"h": 0, // height
	"p": 0, // print
}

// Reply is the outcome of a single command line.
type Reply struct {
	Command string `json:"command"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

func splitArgs(c string) (name string, args []string, err error) {
	name, rest := cutField(strings.TrimSpace(c))
	nargs, ok := commandNargs[name]
	if !ok {
		return "", nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	if nargs == 0 {
		if rest != "" {
			return "", nil, ErrArguments
		}
		return name, nil, nil
	}
	for len(args) < nargs-1 {
		var field string
		if field, rest = cutField(rest); field == "" {
			return "", nil, ErrArguments
		}
		args = append(args, field)
	}
	if rest == "" {
		return "", nil, ErrArguments
	}
	return name, append(args, rest), nil
}

// Execute runs one command line against s and returns its printable output.
func Execute(s *store.Store, c string) (string, error) {
	name, args, err := splitArgs(c)
	if err != nil {
		return "", err
	}
	switch name {
	case "g":
		if value, ok := s.Get(args[0]); ok {
			return value, nil
		}
		return "", fmt.Errorf("%w: %s", bstree.ErrNotFound, args[0])
	case "s":
		if previous, replaced := s.Set(args[0], args[1]); replaced {
			return "replaced " + previous, nil
		}
		return "ok", nil
	case "i":
		s.Insert(args[0], args[1])
		return "ok", nil
	case "r":
		return s.Remove(args[0])
	case "t":
		order, ok := bstree.ParseOrder(args[0])
		if !ok {
			return "", fmt.Errorf("%w: %q", ErrUnknownOrder, args[0])
		}
		return s.Traverse(order), nil
	case "c":
		return strconv.Itoa(s.Count()), nil
	case "h":
		return strconv.Itoa(s.Height()), nil
	case "p":
		var b strings.Builder
		if err := s.Print(&b); err != nil {
			return "", err
		}
		return strings.TrimRight(b.String(), "\n"), nil
	}
	return "", ErrUnknownCommand
}

// ExecuteAll runs every non-blank line of text and reports each outcome.
// A failing line does not stop the ones after it.
func ExecuteAll(s *store.Store, text string) []Reply {
	var replies []Reply
	for _, line := range byPiece(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		reply := Reply{Command: line}
		if out, err := Execute(s, line); err != nil {
			reply.Error = err.Error()
		} else {
			reply.Output = out
		}
		replies = append(replies, reply)
	}
	return replies
}
