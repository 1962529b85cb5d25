package command

import (
	"strconv"

	"github.com/luispdm/cc-redis/resp"
	"github.com/luispdm/cc-redis/store"
)

// The four numeric commands share one evaluation rule: a signed 64-bit
// checked add or subtract against the stored integer, starting from zero on
// a missing or expired key. INCR and DECR are the delta-1 forms.

type Incr struct {
	Key string
}

type Decr struct {
	Key string
}

// IncrBy adds a signed 64-bit delta.
type IncrBy struct {
	Key   string
	Delta int64
}

// DecrBy subtracts a signed 64-bit delta. It stays a subtraction all the
// way down: negating the delta would overflow on math.MinInt64.
type DecrBy struct {
	Key   string
	Delta int64
}

func parseIncr(args []string) (Request, error) {
	if len(args) != 1 {
		return nil, wrongArgs("incr")
	}
	return Incr{Key: args[0]}, nil
}

func parseDecr(args []string) (Request, error) {
	if len(args) != 1 {
		return nil, wrongArgs("decr")
	}
	return Decr{Key: args[0]}, nil
}

func parseIncrBy(args []string) (Request, error) {
	key, delta, err := parseKeyDelta(args, "incrby")
	if err != nil {
		return nil, err
	}
	return IncrBy{Key: key, Delta: delta}, nil
}

func parseDecrBy(args []string) (Request, error) {
	key, delta, err := parseKeyDelta(args, "decrby")
	if err != nil {
		return nil, err
	}
	return DecrBy{Key: key, Delta: delta}, nil
}

func parseKeyDelta(args []string, name string) (string, int64, error) {
	if len(args) != 2 {
		return "", 0, wrongArgs(name)
	}
	delta, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		return "", 0, store.ErrNotInteger
	}
	return args[0], delta, nil
}

func (c Incr) Execute(db *store.DB) resp.Reply {
	return arithReply(db.IncrBy(c.Key, 1))
}

func (c Decr) Execute(db *store.DB) resp.Reply {
	return arithReply(db.DecrBy(c.Key, 1))
}

func (c IncrBy) Execute(db *store.DB) resp.Reply {
	return arithReply(db.IncrBy(c.Key, c.Delta))
}

func (c DecrBy) Execute(db *store.DB) resp.Reply {
	return arithReply(db.DecrBy(c.Key, c.Delta))
}

func arithReply(v int64, err error) resp.Reply {
	if err != nil {
		return resp.SimpleError(err.Error())
	}
	return resp.Integer(v)
}
