package sticker

// Object types understood by MPD. Servers since 0.24 also accept tag names
// (e.g. "Album", "Artist") as object types.
const (
	TypeSong     = "song"
	TypePlaylist = "playlist"
	TypeFilter   = "filter"
)

// ObjectRef identifies the server object a sticker is attached to.
//
// Type is a short tag such as "song"; URI is the path of the object in the
// server's namespace (the path within the music database for songs).
type ObjectRef struct {
	Type string
	URI  string
}

// Song returns a reference to the song at uri.
func Song(uri string) ObjectRef {
	return ObjectRef{Type: TypeSong, URI: uri}
}

// Playlist returns a reference to the stored playlist named name.
func Playlist(name string) ObjectRef {
	return ObjectRef{Type: TypePlaylist, URI: name}
}

func (o ObjectRef) String() string {
	return o.Type + ":" + o.URI
}

// validate checks the fields every object-addressed command requires.
func (o ObjectRef) validate(op Op) error {
	if o.Type == "" {
		return &ArgumentError{Op: op, Field: "type"}
	}
	if o.URI == "" {
		return &ArgumentError{Op: op, Field: "uri"}
	}
	return nil
}
