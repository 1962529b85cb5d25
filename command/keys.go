package command

import (
	"github.com/luispdm/cc-redis/resp"
	"github.com/luispdm/cc-redis/store"
)

// Exists counts how many of the listed keys exist and are not expired.
// Duplicates count separately.
type Exists struct {
	Keys []string
}

func parseExists(args []string) (Request, error) {
	if len(args) < 1 {
		return nil, wrongArgs("exists")
	}
	return Exists{Keys: args}, nil
}

func (e Exists) Execute(db *store.DB) resp.Reply {
	return resp.Integer(db.Exists(e.Keys...))
}

// Del removes the listed keys and counts how many were actually removed.
type Del struct {
	Keys []string
}

func parseDel(args []string) (Request, error) {
	if len(args) < 1 {
		return nil, wrongArgs("del")
	}
	return Del{Keys: args}, nil
}

func (d Del) Execute(db *store.DB) resp.Reply {
	return resp.Integer(db.Del(d.Keys...))
}
