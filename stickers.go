package mpd

import (
	"context"
	"slices"

	"github.com/pior/mpd/proto"
	"github.com/pior/mpd/sticker"
)

// do validates cmd and runs fn on a connection to the server owning uri.
func (c *Client) do(ctx context.Context, uri string, cmd sticker.Command, fn func(conn *Connection) error) error {
	if _, _, err := sticker.Encode(cmd); err != nil {
		return err
	}

	sp, err := c.poolFor(uri)
	if err != nil {
		return err
	}
	return sp.Execute(ctx, fn)
}

// StickerSet adds or replaces the value of a sticker.
func (c *Client) StickerSet(ctx context.Context, obj sticker.ObjectRef, name, value string) error {
	cmd := &sticker.Set{Object: obj, Name: name, Value: value}
	err := c.do(ctx, obj.URI, cmd, func(conn *Connection) error {
		return sticker.Run(conn, cmd)
	})
	if err != nil {
		c.stats.recordError()
		return err
	}

	c.stats.recordSet()
	return nil
}

// StickerGet reads the value of a sticker.
// found is false when the object has no sticker with that name.
func (c *Client) StickerGet(ctx context.Context, obj sticker.ObjectRef, name string) (value string, found bool, err error) {
	cmd := &sticker.Get{Object: obj, Name: name}
	err = c.do(ctx, obj.URI, cmd, func(conn *Connection) error {
		if err := sticker.Send(conn, cmd); err != nil {
			return err
		}

		s, err := sticker.Recv(conn)
		if err != nil {
			return err
		}
		if s == nil {
			return &sticker.UnexpectedKeyError{Expected: sticker.KeySticker}
		}

		value, found = s.Value, true
		return nil
	})
	if proto.IsAck(err, proto.AckNoExist) {
		c.stats.recordGet(false)
		return "", false, nil
	}
	if err != nil {
		c.stats.recordError()
		return "", false, err
	}

	c.stats.recordGet(true)
	return value, found, nil
}

// StickerList returns every sticker of an object, in server order.
func (c *Client) StickerList(ctx context.Context, obj sticker.ObjectRef) ([]sticker.Sticker, error) {
	cmd := &sticker.List{Object: obj}

	var stickers []sticker.Sticker
	err := c.do(ctx, obj.URI, cmd, func(conn *Connection) error {
		if err := sticker.Send(conn, cmd); err != nil {
			return err
		}
		var err error
		stickers, err = sticker.ReadAll(conn)
		return err
	})
	if err != nil {
		c.stats.recordError()
		return nil, err
	}

	c.stats.recordList()
	return stickers, nil
}

// StickerDelete deletes a sticker, or every sticker of the object when name
// is empty.
func (c *Client) StickerDelete(ctx context.Context, obj sticker.ObjectRef, name string) error {
	cmd := &sticker.Delete{Object: obj, Name: name}
	err := c.do(ctx, obj.URI, cmd, func(conn *Connection) error {
		return sticker.Run(conn, cmd)
	})
	if err != nil {
		c.stats.recordError()
		return err
	}

	c.stats.recordDelete()
	return nil
}

// StickerInc adds delta to an integer sticker, creating it when missing.
func (c *Client) StickerInc(ctx context.Context, obj sticker.ObjectRef, name string, delta uint64) error {
	return c.update(ctx, obj, &sticker.Inc{Object: obj, Name: name, Delta: delta})
}

// StickerDec subtracts delta from an integer sticker.
func (c *Client) StickerDec(ctx context.Context, obj sticker.ObjectRef, name string, delta uint64) error {
	return c.update(ctx, obj, &sticker.Dec{Object: obj, Name: name, Delta: delta})
}

func (c *Client) update(ctx context.Context, obj sticker.ObjectRef, cmd sticker.Command) error {
	err := c.do(ctx, obj.URI, cmd, func(conn *Connection) error {
		return sticker.Run(conn, cmd)
	})
	if err != nil {
		c.stats.recordError()
		return err
	}

	c.stats.recordUpdate()
	return nil
}

// StickerFind returns the objects of type typ under baseURI that carry the
// sticker name, with its value. An empty baseURI searches every object.
//
// Every server is searched; matches are returned grouped by server, in
// server list order.
func (c *Client) StickerFind(ctx context.Context, typ, baseURI, name string) ([]sticker.Found, error) {
	return c.find(ctx, &sticker.Find{Type: typ, BaseURI: baseURI, Name: name})
}

// StickerFindValue is StickerFind restricted to values matching op and value.
func (c *Client) StickerFindValue(ctx context.Context, typ, baseURI, name string, op sticker.Operator, value string) ([]sticker.Found, error) {
	return c.find(ctx, &sticker.FindValue{Type: typ, BaseURI: baseURI, Name: name, Operator: op, Value: value})
}

func (c *Client) find(ctx context.Context, cmd sticker.Command) ([]sticker.Found, error) {
	if _, _, err := sticker.Encode(cmd); err != nil {
		c.stats.recordError()
		return nil, err
	}

	perServer, err := fanOut(ctx, c, func(conn *Connection) ([]sticker.Found, error) {
		if err := sticker.Send(conn, cmd); err != nil {
			return nil, err
		}
		return sticker.ReadAllFound(conn)
	})
	if err != nil {
		c.stats.recordError()
		return nil, err
	}

	c.stats.recordFind()
	return slices.Concat(perServer...), nil
}

// StickerNames returns the sticker names in use on any server, sorted.
func (c *Client) StickerNames(ctx context.Context) ([]string, error) {
	return c.listing(ctx, &sticker.Names{}, sticker.KeySticker)
}

// StickerTypes returns the object types accepted by the servers, sorted.
func (c *Client) StickerTypes(ctx context.Context) ([]string, error) {
	return c.listing(ctx, &sticker.Types{}, sticker.KeyStickerType)
}

func (c *Client) listing(ctx context.Context, cmd sticker.Command, key string) ([]string, error) {
	perServer, err := fanOut(ctx, c, func(conn *Connection) ([]string, error) {
		if err := sticker.Send(conn, cmd); err != nil {
			return nil, err
		}
		return sticker.ReadNames(conn, key)
	})
	if err != nil {
		c.stats.recordError()
		return nil, err
	}

	c.stats.recordListing()
	names := slices.Concat(perServer...)
	slices.Sort(names)
	return slices.Compact(names), nil
}

// Ping checks that every server answers.
func (c *Client) Ping(ctx context.Context) error {
	_, err := fanOut(ctx, c, func(conn *Connection) (struct{}, error) {
		return struct{}{}, conn.Ping()
	})
	return err
}
