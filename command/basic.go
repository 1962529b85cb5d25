package command

import (
	"github.com/luispdm/cc-redis/resp"
	"github.com/luispdm/cc-redis/store"
)

// Ping replies PONG, or echoes its optional argument as a bulk string.
type Ping struct {
	Msg    string
	HasMsg bool
}

func parsePing(args []string) (Request, error) {
	switch len(args) {
	case 0:
		return Ping{}, nil
	case 1:
		return Ping{Msg: args[0], HasMsg: true}, nil
	default:
		return nil, wrongArgs("ping")
	}
}

func (p Ping) Execute(db *store.DB) resp.Reply {
	if p.HasMsg {
		return resp.BulkString(p.Msg)
	}
	return resp.SimpleString("PONG")
}

// Echo replies its argument as a bulk string.
type Echo struct {
	Msg string
}

func parseEcho(args []string) (Request, error) {
	if len(args) != 1 {
		return nil, wrongArgs("echo")
	}
	return Echo{Msg: args[0]}, nil
}

func (e Echo) Execute(db *store.DB) resp.Reply {
	return resp.BulkString(e.Msg)
}
