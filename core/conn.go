package core

import (
	"io"
	"net"
	"strings"

	"github.com/rs/zerolog"
	"github.com/valyala/bytebufferpool"
	"golang.org/x/time/rate"

	"github.com/luispdm/cc-redis/command"
	"github.com/luispdm/cc-redis/resp"
)

var bbpool bytebufferpool.Pool

// conn services one accepted connection: one request frame per read, one
// reply per frame.
type conn struct {
	zerolog.Logger // logger with connection id

	s  *Server
	nc net.Conn
	id uint64

	bufsize int
	limiter *rate.Limiter // nil when rate limiting is off
}

func (s *Server) newConn(nc net.Conn) *conn {
	c := &conn{
		s:       s,
		nc:      nc,
		id:      s.connID.Add(1),
		bufsize: s.K.Int("read-buffer"),
	}
	if c.bufsize <= 0 {
		c.bufsize = 4096
	}
	if v := s.K.Float64("limit-rate"); v > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(v), max(1, int(v)))
	}
	c.Logger = s.With().
		Uint64("conn", c.id).
		Str("remote", nc.RemoteAddr().String()).
		Logger()

	s.conns.Store(c.id, c)
	return c
}

// serve drives the connection until EOF, a read/write error, or shutdown.
// Decode and command failures are replied to; they never close the
// connection.
func (c *conn) serve() {
	defer func() {
		c.nc.Close()
		c.s.conns.Delete(c.id)
		c.s.wg.Done()
	}()

	c.Debug().Msg("connection accepted")

	buf := make([]byte, c.bufsize)
	for {
		n, err := c.nc.Read(buf)
		if err != nil {
			if err != io.EOF && c.s.Ctx.Err() == nil {
				c.Debug().Err(err).Msg("read error")
			}
			c.Debug().Msg("connection closed")
			return
		}

		// pace before touching the store, never while inside it
		if c.limiter != nil {
			if err := c.limiter.Wait(c.s.Ctx); err != nil {
				return
			}
		}

		rep := c.handle(buf[:n])

		bb := bbpool.Get()
		bb.B = rep.Append(bb.B[:0])
		_, werr := c.nc.Write(bb.B)
		bbpool.Put(bb)
		if werr != nil {
			c.Debug().Err(werr).Msg("write error")
			return
		}
	}
}

// handle runs one frame through decode, parse and execute.
func (c *conn) handle(frame []byte) resp.Reply {
	c.Trace().Bytes("frame", frame).Msg("request")

	params, err := resp.Decode(frame)
	if err != nil {
		c.s.mDecodeErr.Inc()
		return resp.SimpleError(err.Error())
	}

	req, err := command.Parse(c.s.repo, params)
	if err != nil {
		c.s.mCmdErr.Inc()
		return resp.SimpleError(err.Error())
	}

	c.s.cmdCounter(strings.ToLower(params[0])).Inc()
	return req.Execute(c.s.DB)
}
