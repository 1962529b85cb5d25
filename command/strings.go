package command

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/luispdm/cc-redis/resp"
	"github.com/luispdm/cc-redis/store"
)

// Get returns the stored value as a bulk string (integers render as their
// decimal literal), or the null reply when the key is absent or expired.
type Get struct {
	Key string
}

func parseGet(args []string) (Request, error) {
	if len(args) != 1 {
		return nil, wrongArgs("get")
	}
	return Get{Key: args[0]}, nil
}

func (g Get) Execute(db *store.DB) resp.Reply {
	v, ok := db.Get(g.Key)
	if !ok {
		return resp.Null()
	}
	return resp.BulkString(v)
}

// Set stores the literal argument string under the key, replacing any prior
// object. A zero Exp clears any prior expiry.
type Set struct {
	Key   string
	Value string
	Exp   time.Time
}

// parseSet accepts `key value` or `key value <option> <n>`. An option token
// without its integer (arity 3) and anything past arity 4 are syntax errors.
func parseSet(args []string) (Request, error) {
	if len(args) < 2 {
		return nil, wrongArgs("set")
	}
	if len(args) == 3 || len(args) > 4 {
		return nil, ErrSyntax
	}

	s := Set{Key: args[0], Value: args[1]}
	if len(args) == 4 {
		exp, err := expireAt(args[2], args[3])
		if err != nil {
			return nil, err
		}
		s.Exp = exp
	}
	return s, nil
}

func (s Set) Execute(db *store.DB) resp.Reply {
	db.Set(s.Key, s.Value, s.Exp)
	return resp.SimpleString("OK")
}

// expireAt resolves a SET expiry option to an absolute instant. The integer
// parses as unsigned decimal 64-bit before the option token is examined, so
// a bad number reports as an integer error even alongside a bad token.
// Instants are kept within the nanosecond-representable epoch range;
// arithmetic past it is refused, not wrapped.
func expireAt(option, value string) (time.Time, error) {
	n, err := strconv.ParseUint(value, 10, 64)
	if err != nil {
		return time.Time{}, store.ErrNotInteger
	}

	switch strings.ToLower(option) {
	case "ex":
		return expireIn(n, time.Second)
	case "px":
		return expireIn(n, time.Millisecond)
	case "exat":
		return epochPlus(n, time.Second)
	case "pxat":
		return epochPlus(n, time.Millisecond)
	default:
		return time.Time{}, ErrSyntax
	}
}

func expireIn(n uint64, unit time.Duration) (time.Time, error) {
	if n > uint64(math.MaxInt64)/uint64(unit) {
		return time.Time{}, store.ErrNotInteger
	}
	now := time.Now()
	exp := now.Add(time.Duration(n) * unit)
	if exp.Before(now) || exp.After(time.Unix(0, math.MaxInt64)) {
		return time.Time{}, store.ErrNotInteger
	}
	return exp, nil
}

func epochPlus(n uint64, unit time.Duration) (time.Time, error) {
	if n > uint64(math.MaxInt64)/uint64(unit) {
		return time.Time{}, store.ErrNotInteger
	}
	return time.Unix(0, int64(n)*int64(unit)), nil
}
