package command

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luispdm/cc-redis/resp"
	"github.com/luispdm/cc-redis/store"
)

func TestParseEmpty(t *testing.T) {
	_, err := Parse(Repo, nil)
	require.EqualError(t, err, "unknown command ''")
	require.ErrorIs(t, err, ErrUnknownCommand)
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse(Repo, []string{"UNKNOWN"})
	require.EqualError(t, err, "unknown command 'unknown'")
}

func TestParseCaseInsensitive(t *testing.T) {
	for _, token := range []string{"ping", "PING", "PiNg"} {
		req, err := Parse(Repo, []string{token})
		require.NoError(t, err, token)
		require.Equal(t, Ping{}, req)
	}
}

func TestParsePing(t *testing.T) {
	req, err := Parse(Repo, []string{"PING"})
	require.NoError(t, err)
	require.Equal(t, Ping{}, req)

	req, err = Parse(Repo, []string{"PING", "hello"})
	require.NoError(t, err)
	require.Equal(t, Ping{Msg: "hello", HasMsg: true}, req)

	_, err = Parse(Repo, []string{"PING", "arg1", "arg2"})
	require.EqualError(t, err, "wrong number of arguments for 'ping' command")
	require.ErrorIs(t, err, ErrWrongArgs)
}

func TestParseEcho(t *testing.T) {
	req, err := Parse(Repo, []string{"ECHO", "hello world"})
	require.NoError(t, err)
	require.Equal(t, Echo{Msg: "hello world"}, req)

	_, err = Parse(Repo, []string{"ECHO"})
	require.EqualError(t, err, "wrong number of arguments for 'echo' command")

	_, err = Parse(Repo, []string{"ECHO", "arg1", "arg2"})
	require.ErrorIs(t, err, ErrWrongArgs)
}

func TestParseArity(t *testing.T) {
	cases := []struct {
		params []string
		want   string
	}{
		{[]string{"GET"}, "wrong number of arguments for 'get' command"},
		{[]string{"GET", "a", "b"}, "wrong number of arguments for 'get' command"},
		{[]string{"SET", "k"}, "wrong number of arguments for 'set' command"},
		{[]string{"EXISTS"}, "wrong number of arguments for 'exists' command"},
		{[]string{"DEL"}, "wrong number of arguments for 'del' command"},
		{[]string{"INCR"}, "wrong number of arguments for 'incr' command"},
		{[]string{"INCR", "k", "x"}, "wrong number of arguments for 'incr' command"},
		{[]string{"DECR"}, "wrong number of arguments for 'decr' command"},
		{[]string{"INCRBY", "k"}, "wrong number of arguments for 'incrby' command"},
		{[]string{"DECRBY", "k", "1", "2"}, "wrong number of arguments for 'decrby' command"},
	}
	for _, tc := range cases {
		_, err := Parse(Repo, tc.params)
		require.EqualError(t, err, tc.want, "%v", tc.params)
	}
}

func TestExecutePingEcho(t *testing.T) {
	db := store.New()
	require.Equal(t, resp.SimpleString("PONG"), Ping{}.Execute(db))
	require.Equal(t, resp.BulkString("ciao"), Ping{Msg: "ciao", HasMsg: true}.Execute(db))
	require.Equal(t, resp.BulkString("test message"), Echo{Msg: "test message"}.Execute(db))
}
