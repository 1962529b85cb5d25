// Package command implements the request model: per-command argument
// parsing and execution against the keyspace.
package command

import (
	"strings"

	"github.com/luispdm/cc-redis/resp"
	"github.com/luispdm/cc-redis/store"
)

// Request is one parsed client command, ready to run against the store.
// Execute performs the command's state transition and returns its reply;
// client-visible failures are folded into an error reply.
type Request interface {
	Execute(db *store.DB) resp.Reply
}

// ParseFunc builds a Request from the arguments after the command token.
type ParseFunc func(args []string) (Request, error)

// Repo maps command tokens to their parse functions. It is the standard
// command set; servers take it as a constructor argument so tests can wire
// a reduced or extended one.
var Repo = map[string]ParseFunc{
	"ping":   parsePing,
	"echo":   parseEcho,
	"get":    parseGet,
	"set":    parseSet,
	"exists": parseExists,
	"del":    parseDel,
	"incr":   parseIncr,
	"decr":   parseDecr,
	"incrby": parseIncrBy,
	"decrby": parseDecrBy,
}

// Parse dispatches on the lowercased first argument and hands the rest to
// the command's own parser.
func Parse(repo map[string]ParseFunc, params []string) (Request, error) {
	if len(params) == 0 {
		return nil, unknownCommand("")
	}

	name := strings.ToLower(params[0])
	pf, ok := repo[name]
	if !ok {
		return nil, unknownCommand(name)
	}
	return pf(params[1:])
}
